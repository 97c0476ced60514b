package models

import "time"

// ArticleStatusHistory is an append-only audit row, one per accepted transition.
type ArticleStatusHistory struct {
	ID         string        `db:"id" json:"id"`
	ArticleID  string        `db:"article_id" json:"article_id"`
	FromStatus ArticleStatus `db:"from_status" json:"from_status"`
	ToStatus   ArticleStatus `db:"to_status" json:"to_status"`
	ChangedBy  *string       `db:"changed_by" json:"changed_by,omitempty"`
	Reason     string        `db:"reason" json:"reason"`
	ChangedAt  time.Time     `db:"changed_at" json:"changed_at"`
}

// HistoryReplay is the status sequence rebuilt from an article's audit rows.
type HistoryReplay struct {
	ArticleID     string          `json:"article_id"`
	Statuses      []ArticleStatus `json:"statuses"`
	Replayed      ArticleStatus   `json:"replayed_status"`
	CurrentStatus ArticleStatus   `json:"current_status"`
	Consistent    bool            `json:"consistent"`
	Problems      []string        `json:"problems,omitempty"`
}

// HistoryExport is a rendered audit trail ready for download.
type HistoryExport struct {
	Filename    string
	ContentType string
	Body        []byte
}
