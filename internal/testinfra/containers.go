package testinfra

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	NginxImage = "nginx:1.27-alpine"

	// EnvIntegration enables tests that need a container runtime.
	EnvIntegration = "BLOGSMITH_INTEGRATION"

	containerSiteDir = "/usr/share/nginx/html"
	containerConf    = "/etc/nginx/conf.d/default.conf"
	containerCertDir = "/etc/nginx/certs"

	previewClientTimeout = 10 * time.Second
)

// PreviewServer is an nginx container serving a generated site.
type PreviewServer struct {
	testcontainers.Container
	// URL is the scheme, host and mapped port, without a trailing slash.
	URL string

	client *http.Client
}

// Client returns an HTTP client suited to the server: plain for HTTP,
// trusting only the preview CA for HTTPS.
func (s *PreviewServer) Client() *http.Client { return s.client }

// StartPreviewServer serves siteDir read-only over plain HTTP.
func StartPreviewServer(ctx context.Context, siteDir string) (*PreviewServer, error) {
	return startNginx(ctx, siteDir, nil)
}

// StartTLSPreviewServer serves siteDir over HTTPS with cert. The container
// host must be one of cert.Hosts.
func StartTLSPreviewServer(ctx context.Context, siteDir string, cert *PreviewCert) (*PreviewServer, error) {
	if cert == nil {
		return nil, fmt.Errorf("a preview certificate is required for HTTPS")
	}
	return startNginx(ctx, siteDir, cert)
}

// previewEndpoint is the container port and URL scheme nginx listens with.
func previewEndpoint(tls bool) (nat.Port, string) {
	if tls {
		return nat.Port("443/tcp"), "https"
	}
	return nat.Port("80/tcp"), "http"
}

func startNginx(ctx context.Context, siteDir string, cert *PreviewCert) (*PreviewServer, error) {
	absSite, err := filepath.Abs(siteDir)
	if err != nil {
		return nil, fmt.Errorf("resolve site dir: %w", err)
	}

	port, scheme := previewEndpoint(cert != nil)

	workDir, err := os.MkdirTemp("", "blogsmith-preview-")
	if err != nil {
		return nil, fmt.Errorf("create preview work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	confPath, err := writeNginxConfig(workDir, cert != nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: previewClientTimeout}
	var certPaths *CertPaths
	if cert != nil {
		if certPaths, err = cert.WriteFiles(workDir); err != nil {
			return nil, err
		}
		client = cert.Client(previewClientTimeout)
	}

	files := []testcontainers.ContainerFile{
		{HostFilePath: confPath, ContainerFilePath: containerConf, FileMode: 0o644},
	}
	if certPaths != nil {
		files = append(files,
			testcontainers.ContainerFile{HostFilePath: certPaths.ServerCert, ContainerFilePath: containerCertDir + "/server.crt", FileMode: 0o644},
			testcontainers.ContainerFile{HostFilePath: certPaths.ServerKey, ContainerFilePath: containerCertDir + "/server.key", FileMode: 0o644},
		)
	}

	waitFor := wait.ForListeningPort(port).WithStartupTimeout(60 * time.Second)

	req := testcontainers.ContainerRequest{
		Image:        NginxImage,
		ExposedPorts: []string{string(port)},
		Files:        files,
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.Binds = append(hc.Binds, absSite+":"+containerSiteDir+":ro")
		},
		WaitingFor: waitFor,
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start nginx: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	if cert != nil && !cert.Covers(host) {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("preview certificate does not cover container host %q (hosts: %v)", host, cert.Hosts)
	}
	mapped, err := ctr.MappedPort(ctx, port)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &PreviewServer{
		Container: ctr,
		URL:       fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(host, mapped.Port())),
		client:    client,
	}, nil
}

// writeNginxConfig writes a server block that maps clean URLs onto the
// generated .html files, the way a static host would.
func writeNginxConfig(dir string, tls bool) (string, error) {
	listen := "listen 80;"
	if tls {
		listen = fmt.Sprintf(`listen 443 ssl;
    ssl_certificate     %s/server.crt;
    ssl_certificate_key %s/server.key;`, containerCertDir, containerCertDir)
	}

	conf := fmt.Sprintf(`server {
    %s
    root %s;
    index index.html;
    types {
        text/html             html;
        text/css              css;
        application/rss+xml   xml;
        image/png             png;
    }
    location / {
        try_files $uri $uri.html $uri/ =404;
    }
}
`, listen, containerSiteDir)

	confPath := filepath.Join(dir, "default.conf")
	if err := os.WriteFile(confPath, []byte(conf), 0644); err != nil {
		return "", fmt.Errorf("write nginx config: %w", err)
	}
	return confPath, nil
}
