package export

import "time"

const TimestampLayout = "2006-01-02 15:04:05"

// Row is one chat exchange as it appears in an export.
type Row struct {
	Message   string
	Response  string
	Timestamp time.Time
}

func CSVFilename(username string) string {
	return username + "_chat_history.csv"
}

func PDFFilename(username, date string) string {
	name := "ChatHistory_" + username
	if date != "" {
		name += "_" + date
	}
	return name + ".pdf"
}

func PDFTitle(username, date string) string {
	title := "Chat History for " + username
	if date != "" {
		title += " - " + date
	}
	return title
}
