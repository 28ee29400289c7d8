package cmd

type Config struct {
	HTTPPort                 string
	DBHost                   string
	DBPort                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBSslMode                string
	RoutingServiceURL        string
	RoutingTimeoutSeconds    string
	AccountsServiceURL       string
	AccountsTimeoutSeconds   string
	KafkaBrokers             string
	KafkaOrderEventsTopic    string
	KafkaTrackingEventsTopic string
}
