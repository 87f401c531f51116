package middleware

import "github.com/aretw0/wayfinder/pkg/ports"

// Middleware allows wrapping a ConfigCache to add behavior.
type Middleware func(ports.ConfigCache) ports.ConfigCache

// Chain applies middlewares so the first one is the outermost.
func Chain(cache ports.ConfigCache, mws ...Middleware) ports.ConfigCache {
	for i := len(mws) - 1; i >= 0; i-- {
		cache = mws[i](cache)
	}
	return cache
}
