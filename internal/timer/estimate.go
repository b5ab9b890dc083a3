package timer

// EstimateDuration оценивает длительность тренировки в секундах:
// стартовый отсчет, подходы средней длительности и отдых между ними
func EstimateDuration(p Params, avgSetSeconds int) int {
	if p.TotalSets < 1 {
		return 0
	}
	return p.InitialCountdown + p.TotalSets*max(avgSetSeconds, 0) + (p.TotalSets-1)*p.RestTime
}
