package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/metrics"
	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/internal/accounts/store"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/cryptox"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/slogx"

	_ "github.com/aussiebroadwan/university/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Options configures the transport concerns of the router.
type Options struct {
	BuildVersion string

	Cookie httpx.CookieConfig
	CORS   httpx.CORSConfig

	// CSRF issues tokens on GET /auth/csrf/. When CSRFEnabled is set its
	// middleware also guards every unsafe request.
	CSRF        *httpx.CSRF
	CSRFEnabled bool

	// AllowHeaderAuth accepts "Authorization: Bearer" when no access cookie
	// is sent.
	AllowHeaderAuth bool

	RateLimits httpx.RateLimits
	Metrics    *metrics.Metrics

	// Now is the clock used for cookie lifetimes. Defaults to time.Now.
	Now func() time.Time
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	opts      Options
	startTime time.Time
	logger    *slog.Logger

	store        store.Store
	TokenService *service.TokenService
	UserService  *service.UserService
}

func NewRouter(st store.Store, logger *slog.Logger, opts Options) *Router {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.CSRF == nil {
		opts.CSRF = &httpx.CSRF{
			Secret: []byte(cryptox.MustGenerateToken(cryptox.TokenSize256)),
			Cookie: opts.Cookie,
			Now:    opts.Now,
		}
	}
	if opts.RateLimits == (httpx.RateLimits{}) {
		opts.RateLimits = httpx.DefaultRateLimits()
	}

	r := &Router{
		Mux:       http.NewServeMux(),
		opts:      opts,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	// Metrics must stay innermost so it can read the matched route pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(opts.CORS),
	}
	if opts.CSRFEnabled {
		r.middlewares = append(r.middlewares, opts.CSRF.Middleware())
	}
	r.middlewares = append(r.middlewares, opts.Metrics.Middleware())

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			University Accounts API
//	@version		0.1.0
//	@description	Account registration, sign in and session management for the university portal.
//	@description
//	@description				Access and refresh tokens are JWTs carried in HttpOnly cookies. Unsafe requests must echo the csrftoken cookie in the X-CSRF-Token header.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/university
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						access_token
//	@description				JWT access token set by /auth/login/.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) cookies() sessionCookies {
	return sessionCookies{Config: r.opts.Cookie, Now: r.opts.Now}
}

func (r *Router) authn() httpx.Middleware {
	return authnMiddleware(r.TokenService, r.opts.Metrics, r.opts.AllowHeaderAuth)
}

func (r *Router) registerAuth() {
	limits := r.opts.RateLimits

	// GET /auth/csrf/ - public, hit once per page load
	r.Mux.Handle("GET "+accountsdk.PathCSRF+"{$}",
		httpx.Chain(&CSRFHandler{CSRF: r.opts.CSRF},
			httpx.RateLimitByIP(limits.Public),
		),
	)

	// POST /auth/register/ - strict, keyed by IP + email
	r.Mux.Handle("POST "+accountsdk.PathRegister+"{$}",
		httpx.Chain(&RegisterHandler{
			UserService:  r.UserService,
			TokenService: r.TokenService,
			Cookies:      r.cookies(),
		},
			httpx.RateLimitByIPAndJSONField(limits.Strict, "email"),
		),
	)

	// POST /auth/login/ - strict, keyed by IP + email against password guessing
	r.Mux.Handle("POST "+accountsdk.PathLogin+"{$}",
		httpx.Chain(&LoginHandler{
			UserService:  r.UserService,
			TokenService: r.TokenService,
			Cookies:      r.cookies(),
			Metrics:      r.opts.Metrics,
		},
			httpx.RateLimitByIPAndJSONField(limits.Strict, "email"),
		),
	)

	// POST /auth/logout/ - unauthenticated so broken sessions can still end
	r.Mux.Handle("POST "+accountsdk.PathLogout+"{$}",
		httpx.Chain(&LogoutHandler{
			TokenService:    r.TokenService,
			Cookies:         r.cookies(),
			AllowHeaderAuth: r.opts.AllowHeaderAuth,
		},
			httpx.RateLimitByIP(limits.Moderate),
		),
	)

	// POST /auth/token/refresh/ - strict by IP
	r.Mux.Handle("POST "+accountsdk.PathRefresh+"{$}",
		httpx.Chain(&RefreshHandler{
			TokenService: r.TokenService,
			Cookies:      r.cookies(),
			Metrics:      r.opts.Metrics,
		},
			httpx.RateLimitByIP(limits.Strict),
		),
	)
}

func (r *Router) registerProfile() {
	limits := r.opts.RateLimits
	me := &MeHandler{UserService: r.UserService}

	// GET/POST/PATCH /auth/me/ - lenient by user
	for method, h := range map[string]http.HandlerFunc{
		http.MethodGet:   me.HandleGet,
		http.MethodPost:  me.HandleUpdate,
		http.MethodPatch: me.HandleUpdate,
	} {
		r.Mux.Handle(method+" "+accountsdk.PathMe+"{$}",
			httpx.Chain(h,
				r.authn(),
				httpx.RateLimitByUser(limits.Lenient),
			),
		)
	}

	// POST /auth/password/change/ - moderate by user
	r.Mux.Handle("POST "+accountsdk.PathPasswordChange+"{$}",
		httpx.Chain(&PasswordChangeHandler{
			UserService:     r.UserService,
			TokenService:    r.TokenService,
			Cookies:         r.cookies(),
			Metrics:         r.opts.Metrics,
			AllowHeaderAuth: r.opts.AllowHeaderAuth,
		},
			r.authn(),
			httpx.RateLimitByUser(limits.Moderate),
		),
	)
}

func (r *Router) registerSystem() {
	limits := r.opts.RateLimits

	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.opts.BuildVersion),
			httpx.RateLimitByIP(limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.opts.BuildVersion, r.store, r.TokenService.Keys),
			httpx.RateLimitByIP(limits.Public),
		),
	)
	r.Mux.Handle("GET /metrics", r.opts.Metrics.Handler())
}
