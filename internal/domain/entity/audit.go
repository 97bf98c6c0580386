package entity

// AuditRecord is one row of the append-only audit sink.
type AuditRecord struct {
	ProfileName string `json:"profile_name"`
	ProfileArn  string `json:"profile_arn"`
	TagSummary  string `json:"tags"`
}

// NewAuditRecord flattens a successful outcome; ok is false for Failed/Skipped outcomes.
func NewAuditRecord(o OperationOutcome) (AuditRecord, bool) {
	if !o.Result.Succeeded() {
		return AuditRecord{}, false
	}
	return AuditRecord{
		ProfileName: o.Name(),
		ProfileArn:  o.Arn,
		TagSummary:  o.Request.Tags.Summary(),
	}, true
}

// Row returns the record in sink column order.
func (r AuditRecord) Row() []string {
	return []string{r.ProfileName, r.ProfileArn, r.TagSummary}
}
