package utils

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"bilingual-pdf/logger"
)

const userAgent = "bilingual-pdf (+https://github.com/bilingual-pdf)"

type ClientOptions struct {
	RetryCount int
	RetryWait  time.Duration
	Timeout    time.Duration
}

// NewClient returns a resty client that retries transport errors, 429 and
// 5xx responses, honouring Retry-After.
func NewClient(opts ClientOptions) *resty.Client {
	if opts.RetryWait <= 0 {
		opts.RetryWait = 3 * time.Second
	}

	client := resty.New()
	client.SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	})
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	client.SetLogger(slogAdapter{}).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept-Charset", "utf-8")

	client.SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(10 * opts.RetryWait).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp.StatusCode() == http.StatusTooManyRequests {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return seconds, nil
					}
					if t, err := http.ParseTime(retryAfter); err == nil {
						return time.Until(t), nil
					}
				}
				return opts.RetryWait, nil
			}
			return 0, nil
		}).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	return client
}

type slogAdapter struct{}

func (slogAdapter) Errorf(format string, v ...interface{}) { logger.Error(fmt.Sprintf(format, v...)) }
func (slogAdapter) Warnf(format string, v ...interface{})  { logger.Warn(fmt.Sprintf(format, v...)) }
func (slogAdapter) Debugf(format string, v ...interface{}) { logger.Debug(fmt.Sprintf(format, v...)) }
