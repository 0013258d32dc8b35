package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/chem1sto/test-moscow-metro/docs"
	"github.com/chem1sto/test-moscow-metro/internal/api/handlers"
	"github.com/chem1sto/test-moscow-metro/internal/api/middleware"
	"github.com/chem1sto/test-moscow-metro/internal/config"
	"github.com/chem1sto/test-moscow-metro/internal/utils"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Deps are the long-lived objects the router hands to its handlers.
type Deps struct {
	Config config.Config
	Users  handlers.UserStore
	Posts  handlers.PostStore
	Photos handlers.PhotoStore
	// StaticDir is served under Config.StaticMount when photos are kept on disk.
	StaticDir string
}

func SetupRouter(d Deps) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(d.Config.CorsConfig)

	docs.SwaggerInfo.Title = d.Config.AppTitle
	docs.SwaggerInfo.Description = d.Config.AppDescription

	users := handlers.NewUserHandler(d.Users, d.Posts, d.Photos)
	posts := handlers.NewPostHandler(d.Posts, d.Users)
	photos := handlers.NewPhotoHandler(d.Users, d.Photos, d.Config.MaxUploadSize)
	meta := handlers.NewMetaHandler(d.Config.AppTitle, d.Config.AppDescription)

	mainMux.HandleFunc("GET /{$}", meta.Root)
	mainMux.HandleFunc("GET /health", handlers.Health)
	mainMux.HandleFunc("GET /docs/", httpSwagger.WrapHandler)

	// Full paths on one mux keep the trailing-slash redirect pointing at
	// the resource, e.g. /users/1 -> /users/1/.
	mainMux.HandleFunc("GET /users/{$}", users.ListUsers)
	mainMux.HandleFunc("POST /users/{$}", users.CreateUser)
	mainMux.HandleFunc("GET /users/{id}/{$}", users.GetUser)
	mainMux.HandleFunc("PUT /users/{id}/{$}", users.ReplaceUser)
	mainMux.HandleFunc("PATCH /users/{id}/{$}", users.UpdateUser)
	mainMux.HandleFunc("DELETE /users/{id}/{$}", users.DeleteUser)
	mainMux.HandleFunc("GET /users/{id}/posts/{$}", users.ListUserPosts)

	mainMux.HandleFunc("GET /posts/{$}", posts.ListPosts)
	mainMux.HandleFunc("POST /posts/{$}", posts.CreatePost)
	mainMux.HandleFunc("GET /posts/{id}/{$}", posts.GetPost)
	mainMux.HandleFunc("PUT /posts/{id}/{$}", posts.ReplacePost)
	mainMux.HandleFunc("PATCH /posts/{id}/{$}", posts.UpdatePost)
	mainMux.HandleFunc("DELETE /posts/{id}/{$}", posts.DeletePost)

	mainMux.HandleFunc("POST /users_photo/{id}/{$}", photos.UploadPhoto)

	if d.StaticDir != "" {
		mount := d.Config.StaticMount
		mainMux.Handle("GET "+mount+"/",
			http.StripPrefix(mount, noDirListing(http.FileServer(http.Dir(d.StaticDir)))),
		)
	}

	log.Println("Router initialized")
	handler := c.Handler(jsonFallback(mainMux))
	handler = middleware.Recover(handler)
	handler = middleware.Logger(handler)
	return handler
}

// noDirListing hides directory indexes of the upload directory.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			utils.ErrorResponse(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonFallback serves matched routes and redirects through mux and answers
// unknown paths (404) and wrong methods (405) with the JSON error body.
func jsonFallback(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		rec := &discardRecorder{header: http.Header{}, status: http.StatusNotFound}
		h.ServeHTTP(rec, r)
		if allow := rec.header.Get("Allow"); allow != "" {
			w.Header().Set("Allow", allow)
		}
		utils.ErrorResponse(w, rec.status, http.StatusText(rec.status))
	})
}

// discardRecorder keeps the status and headers of a mux fallback handler
// and drops its plain-text body.
type discardRecorder struct {
	header http.Header
	status int
}

func (d *discardRecorder) Header() http.Header { return d.header }
func (d *discardRecorder) Write(b []byte) (int, error) { return len(b), nil }
func (d *discardRecorder) WriteHeader(code int) { d.status = code }
