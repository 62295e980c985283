package weather

// SummarizeDay combines the hourly readings of a DayArchive into a DaySummary.
// Temperatures are averaged over the hours that report one; the condition is
// selected by majority, ties going to the more severe condition.
func SummarizeDay(archive DayArchive) DaySummary {
	summary := DaySummary{
		Condition: ConditionUnknown,
		Hours:     len(archive.Hours),
	}
	if len(archive.Hours) == 0 {
		return summary
	}

	var (
		sumTemp   float64
		tempCount int
		minTemp   float64
		maxTemp   float64
		maxGust   float64
		gustSeen  bool
	)

	conditionCounts := make(map[Condition]int)

	for _, r := range archive.Hours {
		if r.TemperatureC != nil {
			t := *r.TemperatureC
			if tempCount == 0 || t < minTemp {
				minTemp = t
			}
			if tempCount == 0 || t > maxTemp {
				maxTemp = t
			}
			sumTemp += t
			tempCount++
		}

		if r.PrecipitationMm != nil {
			summary.PrecipitationMm += *r.PrecipitationMm
		}

		if r.WindGustsKmh != nil && (!gustSeen || *r.WindGustsKmh > maxGust) {
			maxGust = *r.WindGustsKmh
			gustSeen = true
		}

		if r.WeatherCode != nil {
			conditionCounts[ConditionFromCode(*r.WeatherCode)]++
		}
	}

	if tempCount > 0 {
		mean := sumTemp / float64(tempCount)
		summary.MinTemperatureC = &minTemp
		summary.MaxTemperatureC = &maxTemp
		summary.MeanTemperatureC = &mean
	}
	if gustSeen {
		summary.MaxGustsKmh = &maxGust
	}

	// Pick majority condition.
	bestCount := 0
	for cond, count := range conditionCounts {
		if count > bestCount || (count == bestCount && severity(cond) > severity(summary.Condition)) {
			bestCount = count
			summary.Condition = cond
		}
	}

	return summary
}
