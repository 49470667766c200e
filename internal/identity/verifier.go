package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// googleCertURL serves the x509 certificates Google signs Firebase ID
// tokens with, keyed by kid.
const googleCertURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

const defaultCertTTL = time.Hour

// VerifiedClaim carries what the login flow needs from a verified ID
// token. Skipped reports that no verification ran because the verifier is
// not configured.
type VerifiedClaim struct {
	Email   string
	UID     string
	Skipped bool
}

type idTokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier validates Google-issued Firebase ID tokens: RS256 signature
// against Google's published certificates, issuer
// https://securetoken.google.com/<project>, audience equal to the project
// ID. Without a project ID it degrades to skip mode so development setups
// without Firebase credentials keep working; callers must treat skipped
// results as unverified.
type Verifier struct {
	projectID string
	certURL   string
	client    *http.Client
	logger    *zap.Logger

	mu        sync.Mutex
	certs     map[string]*rsa.PublicKey
	refreshAt time.Time
}

// NewVerifier builds a Verifier for the given Firebase project. An empty
// projectID yields a skip-mode verifier.
func NewVerifier(projectID string, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		projectID: projectID,
		certURL:   googleCertURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

// Enabled reports whether tokens are actually verified.
func (v *Verifier) Enabled() bool {
	return v.projectID != ""
}

// Verify checks the ID token and returns its identity claims. In skip
// mode it returns Skipped=true without inspecting the token.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*VerifiedClaim, error) {
	if !v.Enabled() {
		v.logger.Warn("identity verifier not configured, skipping token verification")
		return &VerifiedClaim{Skipped: true}, nil
	}

	claims := &idTokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)

	token, err := parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		return v.certificate(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("verify id token: token invalid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("verify id token: empty subject")
	}

	return &VerifiedClaim{Email: claims.Email, UID: claims.Subject}, nil
}

// certificate returns the public key for kid, refreshing the cached set
// from Google when it has expired or the kid is unknown.
func (v *Verifier) certificate(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if time.Now().Before(v.refreshAt) {
		if key, ok := v.certs[kid]; ok {
			return key, nil
		}
	}

	if err := v.refreshLocked(ctx); err != nil {
		return nil, err
	}

	key, ok := v.certs[kid]
	if !ok {
		return nil, fmt.Errorf("no certificate for kid %q", kid)
	}
	return key, nil
}

func (v *Verifier) refreshLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certURL, nil)
	if err != nil {
		return fmt.Errorf("build certificate request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch certificates: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch certificates: unexpected status %d", resp.StatusCode)
	}

	var raw map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("decode certificates: %w", err)
	}

	certs := make(map[string]*rsa.PublicKey, len(raw))
	for kid, certPEM := range raw {
		key, err := parseCertificate(certPEM)
		if err != nil {
			return fmt.Errorf("parse certificate %q: %w", kid, err)
		}
		certs[kid] = key
	}

	v.certs = certs
	v.refreshAt = time.Now().Add(certTTL(resp.Header.Get("Cache-Control")))
	v.logger.Debug("refreshed identity certificates", zap.Int("count", len(certs)))
	return nil
}

func parseCertificate(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate key is not RSA")
	}
	return key, nil
}

// certTTL extracts max-age from a Cache-Control header, falling back to
// an hour.
func certTTL(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		if !strings.HasPrefix(directive, "max-age=") {
			continue
		}
		seconds, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age="))
		if err != nil || seconds <= 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}
	return defaultCertTTL
}
