package webhook

import (
	"fmt"
	"os"

	"github.com/Mavwarf/mkicon/internal/httputil"
)

// Send posts body to the given URL as application/json. Custom headers
// are applied after the default Content-Type and User-Agent and replace
// them when the names match.
// Header values are expanded with os.ExpandEnv to support $VAR secrets.
func Send(url string, body []byte, headers map[string]string) error {
	req, err := httputil.NewJSONRequest(url, body)
	if err != nil {
		return fmt.Errorf("webhook: new request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, os.ExpandEnv(v))
	}

	resp, err := httputil.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()

	return httputil.CheckStatus(resp, "webhook")
}
