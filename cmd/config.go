package cmd

// Config carries the process configuration, loaded from .env at startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Collaborator base URLs.
	CarrierBaseURL string
	CatalogBaseURL string
	MailServiceURL string
	SMSGatewayURL  string

	// SMSEnabled switches the SMS notification channel on; the gateway URL
	// must be set when it is.
	SMSEnabled bool

	// AdminEmail receives alerts when a critical notification cannot be
	// delivered on any channel. Empty disables alerts.
	AdminEmail string

	// TrackingPollSchedule is a six-field cron expression for the carrier
	// tracking poll.
	TrackingPollSchedule string
}
