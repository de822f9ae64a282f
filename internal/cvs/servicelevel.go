package cvs

// The API and the UI disagree on service level names:
//
//	API      UI
//	basic    standard
//	standard premium
//	extreme  extreme
//
// "standard" exists on both sides but names different tiers, so
// translation must always go through the table, never by identity.
// CVS-SO volumes (serviceLevel=basic, storageClass=software) are folded
// into the synthetic level "standard-sw" on both sides.
var (
	serviceLevelAPIToUI = map[string]string{
		"basic":       "standard",
		"standard":    "premium",
		"extreme":     "extreme",
		"standard-sw": "standard-sw",
	}
	serviceLevelUIToAPI = map[string]string{
		"standard":    "basic",
		"premium":     "standard",
		"extreme":     "extreme",
		"standard-sw": "standard-sw",
	}
)

// ServiceLevelAPIToUI translates an API service level name to its UI name.
func ServiceLevelAPIToUI(level string) (string, error) {
	ui, ok := serviceLevelAPIToUI[level]
	if !ok {
		return "", &UnknownServiceLevelError{Level: level}
	}
	return ui, nil
}

// ServiceLevelUIToAPI translates a UI service level name to its API name.
func ServiceLevelUIToAPI(level string) (string, error) {
	api, ok := serviceLevelUIToAPI[level]
	if !ok {
		return "", &UnknownServiceLevelError{Level: level}
	}
	return api, nil
}
