package dto

type CacheStatsResponse struct {
	Namespace string `json:"namespace,omitempty"`

	Count   int64   `json:"count"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

type InvalidateNamespaceResponse struct {
	Namespace string `json:"namespace"`
	Removed   int64  `json:"removed"`
}
