package handler

import (
	"context"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/afaqulislam/todo-full-stack-web-application/internal/rewrite"
)

type proxyTargetKey struct{}

// Proxy forwards requests matched by rules to their rewritten destination.
// Cookies and headers pass through untouched so the auth cookie stays
// first-party for the browser.
func Proxy(rules rewrite.Rules) gin.HandlerFunc {
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			target := pr.In.Context().Value(proxyTargetKey{}).(*url.URL)
			pr.Out.URL.Scheme = target.Scheme
			pr.Out.URL.Host = target.Host
			pr.Out.URL.Path = target.Path
			pr.Out.URL.RawPath = target.RawPath
			pr.Out.URL.RawQuery = pr.In.URL.RawQuery
			pr.Out.Host = target.Host
			pr.SetXForwarded()
		},
		ModifyResponse: func(resp *http.Response) error {
			// CORS is answered by our own middleware.
			for _, key := range []string{
				"Access-Control-Allow-Origin",
				"Access-Control-Allow-Credentials",
				"Access-Control-Allow-Methods",
				"Access-Control-Allow-Headers",
			} {
				resp.Header.Del(key)
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Printf("proxy %s %s: %v", r.Method, r.URL.Path, err)
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	return func(c *gin.Context) {
		dest, ok := rules.Match(c.Request.URL.EscapedPath())
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no rewrite for path"})
			return
		}
		target, err := url.Parse(dest)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "invalid rewrite destination"})
			return
		}

		req := c.Request.WithContext(context.WithValue(c.Request.Context(), proxyTargetKey{}, target))
		proxy.ServeHTTP(c.Writer, req)
	}
}
