package rulecodec

import "strconv"

func formatEpoch(epoch int64) string {
	return strconv.FormatInt(epoch, 10)
}

func parseEpoch(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
