package testinfra

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PreviewHosts are the addresses testcontainers hands back for a local
// docker daemon. A preview certificate covers all of them by default.
var PreviewHosts = []string{"localhost", "127.0.0.1", "::1"}

const previewCertLifetime = time.Hour

// PreviewCert is a throwaway CA and the serving certificate it issued for
// an HTTPS preview of a generated site. Only clients built from the same
// PreviewCert trust it.
type PreviewCert struct {
	// Hosts are the subject alternative names, in the order given.
	Hosts []string

	ca      *x509.Certificate
	certPEM []byte
	keyPEM  []byte
}

// CertPaths locates the serving certificate and key written for nginx.
type CertPaths struct {
	ServerCert string
	ServerKey  string
}

// NewPreviewCert issues a serving certificate for hosts, or for PreviewHosts
// when none are given. Repeated hosts are dropped.
func NewPreviewCert(hosts ...string) (*PreviewCert, error) {
	if len(hosts) == 0 {
		hosts = PreviewHosts
	}
	sans, err := uniqueHosts(hosts)
	if err != nil {
		return nil, err
	}

	caKey, ca, err := issue(&x509.Certificate{
		Subject:               pkix.Name{CommonName: "blogsmith preview CA"},
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("issue preview CA: %w", err)
	}

	leaf := &x509.Certificate{
		Subject:     pkix.Name{CommonName: sans[0]},
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	for _, h := range sans {
		if ip := net.ParseIP(h); ip != nil {
			leaf.IPAddresses = append(leaf.IPAddresses, ip)
		} else {
			leaf.DNSNames = append(leaf.DNSNames, h)
		}
	}

	key, cert, err := issue(leaf, ca, caKey)
	if err != nil {
		return nil, fmt.Errorf("issue preview certificate: %w", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("encode preview key: %w", err)
	}

	return &PreviewCert{
		Hosts:   sans,
		ca:      ca,
		certPEM: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw}),
		keyPEM:  pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}),
	}, nil
}

// hostKey folds case for names and spelling for IPs, so "::1" and
// "0:0:0:0:0:0:0:1" are the same host.
func hostKey(h string) string {
	if ip := net.ParseIP(h); ip != nil {
		return ip.String()
	}
	return strings.ToLower(h)
}

func uniqueHosts(hosts []string) ([]string, error) {
	seen := make(map[string]bool, len(hosts))
	var out []string
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, errors.New("preview host cannot be empty")
		}
		key := hostKey(h)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out, nil
}

// issue creates a fresh key and a certificate for it signed by parent.
// A nil parent self-signs.
func issue(tmpl, parent *x509.Certificate, parentKey *ecdsa.PrivateKey) (*ecdsa.PrivateKey, *x509.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	tmpl.SerialNumber = serial
	tmpl.NotBefore = now.Add(-5 * time.Minute)
	tmpl.NotAfter = now.Add(previewCertLifetime)
	if parent == nil {
		parent, parentKey = tmpl, key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, &key.PublicKey, parentKey)
	if err != nil {
		return nil, nil, err
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, err
	}
	return key, cert, nil
}

// Covers reports whether host is one of the certificate's names.
func (c *PreviewCert) Covers(host string) bool {
	want := hostKey(strings.TrimSpace(host))
	for _, h := range c.Hosts {
		if hostKey(h) == want {
			return true
		}
	}
	return false
}

// CertPool trusts the preview CA and nothing else.
func (c *PreviewCert) CertPool() *x509.CertPool {
	pool := x509.NewCertPool()
	pool.AddCert(c.ca)
	return pool
}

// KeyPair returns the serving certificate for an in-process TLS listener.
func (c *PreviewCert) KeyPair() (tls.Certificate, error) {
	return tls.X509KeyPair(c.certPEM, c.keyPEM)
}

// Client returns an HTTP client that only accepts servers presenting this
// certificate's chain.
func (c *PreviewCert) Client(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: c.CertPool(), MinVersion: tls.VersionTLS12},
		},
	}
}

// WriteFiles writes server.crt and server.key into dir for nginx to load.
func (c *PreviewCert) WriteFiles(dir string) (*CertPaths, error) {
	paths := &CertPaths{
		ServerCert: filepath.Join(dir, "server.crt"),
		ServerKey:  filepath.Join(dir, "server.key"),
	}
	if err := os.WriteFile(paths.ServerCert, c.certPEM, 0644); err != nil {
		return nil, fmt.Errorf("write server.crt: %w", err)
	}
	if err := os.WriteFile(paths.ServerKey, c.keyPEM, 0600); err != nil {
		return nil, fmt.Errorf("write server.key: %w", err)
	}
	return paths, nil
}
