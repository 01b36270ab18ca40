// Package httpapi serves the HTTP side of the server: health probes, the
// calendar feed, the notification websocket and the grpc-web bridge.
package httpapi

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/auth"
	"social-scheduler-api/internal/calendar"
	"social-scheduler-api/internal/meeting"
	"social-scheduler-api/internal/middleware"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/paging"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type MeetingLister interface {
	List(ctx context.Context, userID uuid.UUID, in meeting.ListInput) ([]model.Meeting, int, error)
}

// Bridge is the grpc-web endpoint.
type Bridge interface {
	http.Handler
	Handles(path string) bool
}

type Notifications interface {
	Serve(w http.ResponseWriter, r *http.Request, uid uuid.UUID)
}

type Options struct {
	DB              Pinger
	Meetings        MeetingLister
	Issuer          *auth.Issuer
	Bridge          Bridge
	Hub             Notifications
	Log             *slog.Logger
	CORSOrigins     []string
	MeetingDuration time.Duration
}

const uidKey = "uid"

func NewRouter(o Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLog(o.Log), cors.New(corsConfig(o.CORSOrigins)))

	r.GET("/livez", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := o.DB.Ping(ctx); err != nil {
			o.Log.Warn("readiness check failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/", bearer(o.Issuer))
	authed.GET("/calendar.ics", calendarFeed(o))
	authed.GET("/ws", func(c *gin.Context) {
		o.Hub.Serve(c.Writer, c.Request, c.MustGet(uidKey).(uuid.UUID))
	})

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodPost && o.Bridge.Handles(c.Request.URL.Path) {
			o.Bridge.ServeHTTP(c.Writer, c.Request)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Grpc-Web", "X-User-Agent"},
		ExposeHeaders: []string{"Grpc-Status", "Grpc-Message", "Grpc-Status-Details-Bin"},
		MaxAge:        24 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// bearer authenticates from the Authorization header, or the access_token
// query parameter for clients that cannot set headers (browser websockets).
func bearer(iss *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := middleware.BearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw = c.Query("access_token")
		}
		uid, err := iss.ParseToken(raw)
		if raw == "" || err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": string(apperr.KindUnauthenticated)})
			return
		}
		c.Set(uidKey, uid)
		c.Request = c.Request.WithContext(middleware.WithUserID(c.Request.Context(), uid))
		c.Next()
	}
}

func calendarFeed(o Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.MustGet(uidKey).(uuid.UUID)
		var all []model.Meeting
		for skip := 0; ; skip += paging.MaxLimit {
			ms, total, err := o.Meetings.List(c.Request.Context(), uid, meeting.ListInput{
				Page:                 paging.Page{Skip: skip, Limit: paging.MaxLimit},
				IncludeAsParticipant: true,
			})
			if err != nil {
				o.Log.Error("calendar feed", "user", uid, "err", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": string(apperr.KindInternal)})
				return
			}
			all = append(all, ms...)
			if len(ms) == 0 || len(all) >= total {
				break
			}
		}

		var buf bytes.Buffer
		if err := calendar.Write(&buf, all, o.MeetingDuration, time.Now()); err != nil {
			o.Log.Error("encode calendar", "user", uid, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": string(apperr.KindInternal)})
			return
		}
		c.Header("Content-Disposition", `inline; filename="meetings.ics"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
	}
}

func requestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("took", time.Since(start)),
		)
	}
}
