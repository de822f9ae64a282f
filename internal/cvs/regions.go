package cvs

// Region rollout of the two CVS service types. The software type (CVS-SW)
// and the performance type (CVS-Performance) are available in disjoint
// region sets.
var (
	swRegions = map[string]bool{
		"asia-east2": true, "asia-northeast2": true, "asia-northeast3": true,
		"asia-south1": true, "asia-south2": true, "asia-southeast2": true,
		"australia-southeast2": true,
		"europe-central2":      true, "europe-north1": true, "europe-west1": true, "europe-west6": true,
		"southamerica-east1": true,
		"us-east1":           true, "us-west1": true,
	}
	performanceRegions = map[string]bool{
		"asia-northeast1": true, "asia-southeast1": true,
		"australia-southeast1": true,
		"europe-west2":         true, "europe-west3": true, "europe-west4": true, "europe-southwest1": true,
		"northamerica-northeast1": true, "northamerica-northeast2": true,
		"us-central1": true, "us-east4": true, "us-west2": true, "us-west3": true, "us-west4": true,
	}
)

// IsSWRegion reports whether CVS-SW is available in region.
func IsSWRegion(region string) bool { return swRegions[region] }

// IsPerformanceRegion reports whether CVS-Performance is available in
// region.
func IsPerformanceRegion(region string) bool { return performanceRegions[region] }
