package crm

// Config holds configuration for the CRM API client.
type Config struct {
	// BaseURL is the root of the CRM REST API.
	BaseURL string `mapstructure:"base_url" default:"https://api.pipedrive.com/v1"`
	// APIToken authenticates requests (sent as the api_token query parameter).
	APIToken string `mapstructure:"api_token" default:""`
	// PageLimit is the page size for paginated organization listings.
	PageLimit int `mapstructure:"page_limit" default:"500"`
	// MaxRetries bounds retries for rate-limited or failed requests.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RequestsPerSecond paces outgoing requests to stay under the API rate limit.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"2"`
}
