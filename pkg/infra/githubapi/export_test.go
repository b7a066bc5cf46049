package githubapi

// Export unexported functions for testing
var (
	PrimaryLimitWaitForTest = primaryLimitWait
)

func (x *Client) BuildURLForTest(path string, params []Param) string {
	return x.buildURL(path, params)
}
