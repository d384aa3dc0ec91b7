package fintrack

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/sirupsen/logrus"
)

// dailyCache is a RoundTripper that keeps successful responses on disk for
// the rest of the day. A rate looked up twice the same day, typically by the
// funds check and then by the add, hits the network once.
type dailyCache struct {
	next http.RoundTripper
	dir  string
	log  logrus.FieldLogger
}

// cacheKey names the cache file of req. The day is part of the key, so
// entries expire at midnight.
func cacheKey(req *http.Request) string {
	id := date.Today().String() + " " + req.Method + " " + req.URL.String()
	return fmt.Sprintf("%x", sha1.Sum([]byte(id)))
}

func (c *dailyCache) RoundTrip(req *http.Request) (*http.Response, error) {
	file := filepath.Join(c.dir, cacheKey(req))
	if resp, err := c.read(file, req); err == nil {
		c.log.WithField("url", req.URL.Path).Debug("rate lookup served from cache")
		return resp, nil
	}

	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.Debugf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.write(file, resp); err != nil {
		c.log.WithError(err).Warn("cannot cache rate lookup (ignored)")
	}
	return resp, nil
}

func (c *dailyCache) read(file string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// write dumps resp into file. The body of resp remains readable.
func (c *dailyCache) write(file string, resp *http.Response) error {
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(file, dump, 0644)
}

// Daily returns an HTTP client whose successful responses are cached in dir
// until the end of the day. An empty dir uses the system temporary folder, a
// nil log the logrus standard logger.
func Daily(dir string, timeout time.Duration, log logrus.FieldLogger) *http.Client {
	if dir == "" {
		dir = os.TempDir()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &dailyCache{next: http.DefaultTransport, dir: dir, log: log},
	}
}

// jwget GETs addr and decodes the JSON body into data, numbers as
// json.Number. Any status other than 200 is an error.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(data)
}
