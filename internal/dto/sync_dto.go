package dto

// SyncResumo aggregates one full sync cycle. Falhas carries the external ids
// of activities that were rejected — the batch itself never aborts.
type SyncResumo struct {
	Sincronizadas int      `json:"sincronizadas"`
	Excluidas     int      `json:"excluidas"`
	Falhas        []string `json:"falhas"`
}
