package dto

// HistoryQuery controls the ordering of an article's audit trail.
type HistoryQuery struct {
	Order string `form:"order" validate:"omitempty,oneof=asc desc"`
}

// HistoryExportQuery selects the export format.
type HistoryExportQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=csv pdf"`
}
