package redis

import (
	"context"
	"time"

	"github.com/educahub/educa-learning-hub/internal/application/query"
)

// CertificadoCache implements query.VerificacaoCache, caching verification
// verdicts keyed by certificate code. Verdicts only flip on revocation or
// expiry, and those paths invalidate the entry explicitly.
type CertificadoCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewCertificadoCache creates a new CertificadoCache with the given TTL.
// A zero TTL falls back to TTLCertificadoCache.
func NewCertificadoCache(cache *Cache, ttl time.Duration) *CertificadoCache {
	if ttl <= 0 {
		ttl = TTLCertificadoCache
	}
	return &CertificadoCache{cache: cache, ttl: ttl}
}

// Get returns the cached verdict for a code, or ErrCacheMiss.
func (c *CertificadoCache) Get(ctx context.Context, codigo string) (*query.VerificacaoCertificado, error) {
	var v query.VerificacaoCertificado
	if err := c.cache.Get(ctx, CertificadoKey(codigo), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Set stores a verdict. The entry TTL never crosses the certificate's
// expiry instant, so a positive verdict cannot be served past it.
func (c *CertificadoCache) Set(ctx context.Context, v *query.VerificacaoCertificado) error {
	if v == nil {
		return nil
	}
	return c.cache.Set(ctx, CertificadoKey(v.Codigo), v, c.ttlPara(v))
}

func (c *CertificadoCache) ttlPara(v *query.VerificacaoCertificado) time.Duration {
	if !v.Valido || v.DataValidade == nil {
		return c.ttl
	}
	restante := time.Until(*v.DataValidade)
	if restante > 0 && restante < c.ttl {
		return restante
	}
	return c.ttl
}

// Invalidate removes the verdict for a code. Called when a certificate is
// revoked, suspended, or expired so stale positives do not linger.
func (c *CertificadoCache) Invalidate(ctx context.Context, codigo string) error {
	return c.cache.Delete(ctx, CertificadoKey(codigo))
}

// RegistrarVerificacao increments the lookup counter for a code and returns
// the running total. Counter failures are not fatal to verification.
func (c *CertificadoCache) RegistrarVerificacao(ctx context.Context, codigo string) (int64, error) {
	return c.cache.Incr(ctx, ContadorVerificacoesKey(codigo))
}
