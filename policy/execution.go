package policy

import "watchcore/params"

// SimulateFillPrice implements simulate_fill_price (§4.4.9). The second
// return value is the bias applied on top of snapshotSidePrice (zero for
// the snapshot_price model), carried through to the audit record.
func SimulateFillPrice(snapshotSidePrice float64, ep params.ExecutionParams) (float64, float64) {
	var bias float64
	switch ep.ModelType {
	case params.ExecutionFixedSlippage:
		bias = ep.SlippageOffset
	case params.ExecutionMidPrice:
		bias = ep.FillBiasMedian
	case params.ExecutionWorstCase:
		if ep.FillBiasP75 != 0 {
			bias = ep.FillBiasP75
		} else {
			bias = ep.FillBiasMedian
		}
	default: // snapshot_price and any unrecognized model.
		bias = 0
	}
	return snapshotSidePrice + bias, bias
}
