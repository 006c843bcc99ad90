package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type ImportSummaryData struct {
	Name         string
	SuccessCount int
	FailedCount  int
	Total        int
}
