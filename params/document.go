package params

import (
	"encoding/json"
	"fmt"

	"watchcore/market"
)

// rawEntryParams mirrors the loosely shaped entry_params JSON section.
type rawEntryParams struct {
	UpPriceMin        *float64 `json:"up_price_min"`
	UpPriceMax        *float64 `json:"up_price_max"`
	DownPriceMin      *float64 `json:"down_price_min"`
	DownPriceMax      *float64 `json:"down_price_max"`
	Mode              string   `json:"mode"`
	MomentumWindowS   float64  `json:"momentum_window_s"`
	MomentumThreshold float64  `json:"momentum_threshold"`
}

type rawSizeParams struct {
	BinEdges                  []float64          `json:"bin_edges"`
	SizeTable1D               map[string]float64 `json:"size_table_1d"`
	SizeTable                 map[string]float64 `json:"size_table"`
	ConditioningVar           *string             `json:"conditioning_var"`
	InventoryBucketThresholds []float64          `json:"inventory_bucket_thresholds"`
	InventoryBuckets          []string           `json:"inventory_buckets"`
}

type rawInventoryParams struct {
	MaxUpShares     float64 `json:"max_up_shares"`
	MaxDownShares   float64 `json:"max_down_shares"`
	MaxTotalShares  float64 `json:"max_total_shares"`
	RebalanceRatioR float64 `json:"rebalance_ratio_R"`
}

type rawCadenceParams struct {
	MinInterTradeMs int64 `json:"min_inter_trade_ms"`
	MaxTradesPerSec int   `json:"max_trades_per_sec"`
	MaxTradesPerMin int   `json:"max_trades_per_min"`
}

type rawSideSelectionParams struct {
	Mode          string  `json:"mode"`
	PreferredSide string  `json:"preferred_side"`
	ConfidenceGap float64 `json:"confidence_gap"`
}

type rawExecutionParams struct {
	ModelType      string  `json:"model_type"`
	SlippageOffset float64 `json:"slippage_offset"`
	FillBiasMedian float64 `json:"fill_bias_median"`
	FillBiasP75    float64 `json:"fill_bias_p75"`
}

type rawCooldownParams struct {
	HasTimeCooldown           bool    `json:"has_time_cooldown"`
	TimeCooldownSeconds       float64 `json:"time_cooldown_seconds"`
	PriceMoveThreshold        float64 `json:"price_move_threshold"`
	HasInventoryLockout       bool    `json:"has_inventory_lockout"`
	InventoryLockoutThreshold float64 `json:"inventory_lockout_threshold"`
}

type rawRiskParams struct {
	MaxTradesPerSession   int     `json:"max_trades_per_session"`
	MaxImbalanceRatio     float64 `json:"max_imbalance_ratio"`
	MaxExposureUpShares   float64 `json:"max_exposure_up_shares"`
	MaxExposureDownShares float64 `json:"max_exposure_down_shares"`
}

type rawQualityFilterParams struct {
	MaxPriceSumDeviation           float64 `json:"max_price_sum_deviation"`
	TimestampJumpThresholdSeconds  float64 `json:"timestamp_jump_threshold_seconds"`
	PriceGapThreshold              float64 `json:"price_gap_threshold"`
}

type rawResetParams struct {
	ResetsOnMarketSwitch     bool    `json:"resets_on_market_switch"`
	ResetsOnInactivity       bool    `json:"resets_on_inactivity"`
	InactivityThresholdHours float64 `json:"inactivity_threshold_hours"`
}

type rawConfidence struct {
	NWatchTrades            int     `json:"n_watch_trades"`
	EntryRulePrecision      float64 `json:"entry_rule_precision"`
	EntryRuleRecall         float64 `json:"entry_rule_recall"`
	SizeTableBucketVariance float64 `json:"size_table_bucket_variance"`
}

// rawMarketSection is one market's worth of parameters in market-first
// layout, or one per_market entry's worth in param-type-first layout.
type rawMarketSection struct {
	EntryParams      *rawEntryParams         `json:"entry_params"`
	SizeParams       *rawSizeParams          `json:"size_params"`
	InventoryParams  *rawInventoryParams     `json:"inventory_params"`
	CadenceParams    *rawCadenceParams       `json:"cadence_params"`
	SideSelection    *rawSideSelectionParams `json:"side_selection_params"`
	ExecutionParams  *rawExecutionParams     `json:"execution_params"`
	CooldownParams   *rawCooldownParams      `json:"cooldown_params"`
	RiskParams       *rawRiskParams          `json:"risk_params"`
	QualityFilter    *rawQualityFilterParams `json:"quality_filter_params"`
	ResetParams      *rawResetParams         `json:"reset_params"`
	Confidence       *rawConfidence          `json:"confidence"`
}

// rawParamTypeSection is one top-level key in param-type-first layout:
// {"entry_params": {"per_market": {"BTC_15m": {...}}}}.
type rawParamTypeSection struct {
	PerMarket map[string]json.RawMessage `json:"per_market"`
}

// detectAndNormalize converts raw document bytes into a per-market map of
// rawMarketSection, regardless of which of the two on-disk layouts was
// used. Per §4.1: presence of at least one canonical market key at top
// level and absence of entry_params/size_params at top level means
// market-first; otherwise param-type-first.
func detectAndNormalize(doc map[string]json.RawMessage) (map[string]*rawMarketSection, error) {
	_, hasEntryTop := doc["entry_params"]
	_, hasSizeTop := doc["size_params"]
	hasMarketKeyTop := false
	for k := range doc {
		if market.Key(k).Known() {
			hasMarketKeyTop = true
			break
		}
	}

	if hasMarketKeyTop && !hasEntryTop && !hasSizeTop {
		return normalizeMarketFirst(doc)
	}
	return normalizeParamTypeFirst(doc)
}

func normalizeMarketFirst(doc map[string]json.RawMessage) (map[string]*rawMarketSection, error) {
	out := make(map[string]*rawMarketSection, len(doc))
	for key, raw := range doc {
		if !market.Key(key).Known() {
			continue
		}
		var sec rawMarketSection
		if err := json.Unmarshal(raw, &sec); err != nil {
			return nil, fmt.Errorf("market-first section %q: %w", key, err)
		}
		out[key] = &sec
	}
	return out, nil
}

func normalizeParamTypeFirst(doc map[string]json.RawMessage) (map[string]*rawMarketSection, error) {
	out := make(map[string]*rawMarketSection)
	ensure := func(key string) *rawMarketSection {
		if s, ok := out[key]; ok {
			return s
		}
		s := &rawMarketSection{}
		out[key] = s
		return s
	}

	assign := func(name string, dst func(*rawMarketSection, json.RawMessage) error) error {
		raw, ok := doc[name]
		if !ok {
			return nil
		}
		var section rawParamTypeSection
		if err := json.Unmarshal(raw, &section); err != nil {
			return fmt.Errorf("param-type section %q: %w", name, err)
		}
		for key, body := range section.PerMarket {
			if err := dst(ensure(key), body); err != nil {
				return fmt.Errorf("param-type section %q market %q: %w", name, key, err)
			}
		}
		return nil
	}

	if err := assign("entry_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawEntryParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.EntryParams = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("size_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawSizeParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.SizeParams = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("inventory_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawInventoryParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.InventoryParams = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("cadence_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawCadenceParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.CadenceParams = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("side_selection_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawSideSelectionParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.SideSelection = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("execution_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawExecutionParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.ExecutionParams = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("cooldown_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawCooldownParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.CooldownParams = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("risk_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawRiskParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.RiskParams = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("quality_filter_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawQualityFilterParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.QualityFilter = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("reset_params", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawResetParams
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.ResetParams = &v
		return nil
	}); err != nil {
		return nil, err
	}
	if err := assign("confidence", func(s *rawMarketSection, b json.RawMessage) error {
		var v rawConfidence
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.Confidence = &v
		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// toMarketParams converts one raw section into a validated MarketParams,
// applying the §4.1 defaults/clamps.
func toMarketParams(sec *rawMarketSection) MarketParams {
	mp := defaultMarketParams()

	if sec.EntryParams != nil {
		e := sec.EntryParams
		mp.Entry = EntryParams{
			UpPriceMin:        e.UpPriceMin,
			UpPriceMax:        e.UpPriceMax,
			DownPriceMin:      e.DownPriceMin,
			DownPriceMax:      e.DownPriceMax,
			Mode:              EntryMode(e.Mode),
			MomentumWindowS:   e.MomentumWindowS,
			MomentumThreshold: e.MomentumThreshold,
		}
		if mp.Entry.Mode == "" {
			mp.Entry.Mode = EntryModeNone
		}
	}

	if sec.SizeParams != nil {
		s := sec.SizeParams
		cond := ""
		if s.ConditioningVar != nil {
			cond = *s.ConditioningVar
		}
		binEdges := s.BinEdges
		sizeTable1D := s.SizeTable1D
		sizeTable := s.SizeTable
		if isInvalidBinEdges(binEdges) {
			binEdges = nil
			sizeTable1D = nil
			sizeTable = nil
		}
		if sizeTable1D == nil {
			sizeTable1D = map[string]float64{}
		}
		if sizeTable == nil {
			sizeTable = map[string]float64{}
		}
		mp.Size = SizeParams{
			BinEdges:                  binEdges,
			SizeTable1D:               sizeTable1D,
			SizeTable:                 sizeTable,
			ConditioningVar:           cond,
			InventoryBucketThresholds: s.InventoryBucketThresholds,
			InventoryBuckets:          s.InventoryBuckets,
		}
	}

	if sec.InventoryParams != nil {
		i := sec.InventoryParams
		mp.Inventory = InventoryParams{
			MaxUpShares:     i.MaxUpShares,
			MaxDownShares:   i.MaxDownShares,
			MaxTotalShares:  i.MaxTotalShares,
			RebalanceRatioR: clampRebalanceRatio(i.RebalanceRatioR),
		}
	}

	if sec.CadenceParams != nil {
		c := sec.CadenceParams
		mp.Cadence = CadenceParams{
			MinInterTradeMs: c.MinInterTradeMs,
			MaxTradesPerSec: c.MaxTradesPerSec,
			MaxTradesPerMin: c.MaxTradesPerMin,
		}
	}

	mp.SideSelection = SideSelectionParams{Mode: SideSelectionInventoryDriven}
	if sec.SideSelection != nil {
		s := sec.SideSelection
		mode := SideSelectionMode(s.Mode)
		if mode == "" {
			mode = SideSelectionInventoryDriven
		}
		var pref market.Side
		switch s.PreferredSide {
		case "UP":
			pref = market.Up
		case "DOWN":
			pref = market.Down
		}
		mp.SideSelection = SideSelectionParams{
			Mode:          mode,
			PreferredSide: pref,
			ConfidenceGap: s.ConfidenceGap,
		}
	}

	mp.Execution = ExecutionParams{ModelType: ExecutionSnapshotPrice}
	if sec.ExecutionParams != nil {
		e := sec.ExecutionParams
		model := ExecutionModelType(e.ModelType)
		if model == "" {
			model = ExecutionSnapshotPrice
		}
		mp.Execution = ExecutionParams{
			ModelType:      model,
			SlippageOffset: e.SlippageOffset,
			FillBiasMedian: e.FillBiasMedian,
			FillBiasP75:    e.FillBiasP75,
		}
	}

	if sec.CooldownParams != nil {
		c := sec.CooldownParams
		mp.Cooldown = CooldownParams{
			HasTimeCooldown:           c.HasTimeCooldown,
			TimeCooldownSeconds:       c.TimeCooldownSeconds,
			PriceMoveThreshold:        c.PriceMoveThreshold,
			HasInventoryLockout:       c.HasInventoryLockout,
			InventoryLockoutThreshold: c.InventoryLockoutThreshold,
		}
	}

	if sec.RiskParams != nil {
		r := sec.RiskParams
		mp.Risk = RiskParams{
			MaxTradesPerSession:   r.MaxTradesPerSession,
			MaxImbalanceRatio:     r.MaxImbalanceRatio,
			MaxExposureUpShares:   r.MaxExposureUpShares,
			MaxExposureDownShares: r.MaxExposureDownShares,
		}
	}

	if sec.QualityFilter != nil {
		q := sec.QualityFilter
		mp.Quality = QualityFilterParams{
			MaxPriceSumDeviation:           q.MaxPriceSumDeviation,
			TimestampJumpThresholdSeconds:  q.TimestampJumpThresholdSeconds,
			PriceGapThreshold:              q.PriceGapThreshold,
		}
	}

	if sec.ResetParams != nil {
		r := sec.ResetParams
		mp.Reset = ResetParams{
			ResetsOnMarketSwitch:     r.ResetsOnMarketSwitch,
			ResetsOnInactivity:       r.ResetsOnInactivity,
			InactivityThresholdHours: r.InactivityThresholdHours,
		}
	}

	if sec.Confidence != nil {
		c := sec.Confidence
		mp.Confidence = Confidence{
			NWatchTrades:            c.NWatchTrades,
			EntryRulePrecision:      c.EntryRulePrecision,
			EntryRuleRecall:         c.EntryRuleRecall,
			SizeTableBucketVariance: c.SizeTableBucketVariance,
		}
		mp.HasConfidence = true
	}

	return mp
}

// parseDocument parses raw JSON bytes into a Snapshot, applying format
// detection and per-market validation. Missing sections default to empty
// per-market maps per §4.1.
func parseDocument(data []byte) (*Snapshot, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse parameter document: %w", err)
	}

	rawSections, err := detectAndNormalize(doc)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Markets: map[market.Key]MarketParams{}}
	for key, sec := range rawSections {
		if !market.Key(key).Known() {
			continue
		}
		snap.Markets[market.Key(key)] = toMarketParams(sec)
	}
	return snap, nil
}
