package nbastats

import "fmt"

// SeasonLabel formats a season start year the way the provider expects:
// 2024 becomes "2024-25" and 1999 becomes "1999-00".
func SeasonLabel(season int) (string, error) {
	if season < 1946 || season > 9998 {
		return "", fmt.Errorf("season %d out of range", season)
	}
	return fmt.Sprintf("%d-%02d", season, (season+1)%100), nil
}
