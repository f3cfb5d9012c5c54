// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/curioswitch/mentenote/internal/blob"
	"github.com/curioswitch/mentenote/internal/chat"
	"github.com/curioswitch/mentenote/internal/config"
	"github.com/curioswitch/mentenote/internal/docs"
	"github.com/curioswitch/mentenote/internal/handler/createequipment"
	"github.com/curioswitch/mentenote/internal/handler/createrecord"
	"github.com/curioswitch/mentenote/internal/handler/createsession"
	"github.com/curioswitch/mentenote/internal/handler/deleteequipment"
	"github.com/curioswitch/mentenote/internal/handler/deleterecord"
	"github.com/curioswitch/mentenote/internal/handler/deletesession"
	"github.com/curioswitch/mentenote/internal/handler/downloadurl"
	"github.com/curioswitch/mentenote/internal/handler/exportrecords"
	"github.com/curioswitch/mentenote/internal/handler/getequipment"
	"github.com/curioswitch/mentenote/internal/handler/getrecord"
	"github.com/curioswitch/mentenote/internal/handler/getsession"
	"github.com/curioswitch/mentenote/internal/handler/listequipment"
	"github.com/curioswitch/mentenote/internal/handler/listmessages"
	"github.com/curioswitch/mentenote/internal/handler/listrecords"
	"github.com/curioswitch/mentenote/internal/handler/listsessions"
	"github.com/curioswitch/mentenote/internal/handler/sendmessage"
	"github.com/curioswitch/mentenote/internal/handler/updateequipment"
	"github.com/curioswitch/mentenote/internal/handler/updaterecord"
	"github.com/curioswitch/mentenote/internal/handler/uploadurl"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/llm"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	gcs, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := gcs.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()

	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		Project: conf.Google.Project,
	})
	if err != nil {
		return fmt.Errorf("main: create genai client: %w", err)
	}

	oai := openai.NewClient()

	bucket := conf.Files.Bucket
	if bucket == "" {
		bucket = conf.Google.Project + "-files"
	}
	files := blob.NewStorage(gcs, bucket, time.Duration(conf.Files.URLExpirySeconds)*time.Second)

	store := maintdb.NewStore(firestore)
	sessions := chat.NewSessions(store)
	model := llm.NewClient(genAI, &oai, llm.Provider(conf.Chat.Provider), conf.Chat.Model, conf.Chat.MaxOutputTokens)
	resolver := docs.NewResolver(files)
	orchestrator := chat.NewOrchestrator(store, model, resolver)

	authorizedEmails := strings.Split(conf.Authorization.EmailsCSV, ",")

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	requireAccess := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := firebaseauth.TokenFromContext(r.Context())
			if id, ok := tok.Firebase.Identities["email"]; ok {
				if idAny, ok := id.([]any); ok && len(idAny) > 0 {
					if email, ok := idAny[0].(string); ok {
						if strings.HasSuffix(email, "@curioswitch.org") || slices.Contains(authorizedEmails, email) {
							next.ServeHTTP(w, r)
							return
						}
					}
				}
			}
			http.Error(w, "permission denied", http.StatusForbidden)
		})
	}

	mux.Use(middleware.Maybe(func(h http.Handler) http.Handler {
		return fbMW(requireAccess(h))
	}, func(r *http.Request) bool {
		return !strings.HasPrefix(r.URL.Path, "/internal/")
	}))

	mux.Route("/api", func(r chi.Router) {
		httpapi.Handle(r, http.MethodGet, "/chat/sessions", listsessions.NewHandler(sessions).ListSessions)
		httpapi.Handle(r, http.MethodPost, "/chat/sessions", createsession.NewHandler(sessions).CreateSession, httpapi.WithStatus(http.StatusCreated))
		httpapi.Handle(r, http.MethodGet, "/chat/sessions/{id}", getsession.NewHandler(sessions).GetSession)
		httpapi.Handle(r, http.MethodDelete, "/chat/sessions/{id}", deletesession.NewHandler(sessions).DeleteSession)
		httpapi.Handle(r, http.MethodGet, "/chat/sessions/{id}/messages", listmessages.NewHandler(store).ListMessages)
		httpapi.Handle(r, http.MethodPost, "/chat/sessions/{id}/messages", sendmessage.NewHandler(orchestrator).SendMessage, httpapi.WithStatus(http.StatusCreated))

		httpapi.Handle(r, http.MethodGet, "/equipment", listequipment.NewHandler(store).ListEquipment)
		httpapi.Handle(r, http.MethodPost, "/equipment", createequipment.NewHandler(store).CreateEquipment, httpapi.WithStatus(http.StatusCreated))
		httpapi.Handle(r, http.MethodGet, "/equipment/{id}", getequipment.NewHandler(store).GetEquipment)
		httpapi.Handle(r, http.MethodPut, "/equipment/{id}", updateequipment.NewHandler(store).UpdateEquipment)
		httpapi.Handle(r, http.MethodDelete, "/equipment/{id}", deleteequipment.NewHandler(store).DeleteEquipment)

		httpapi.Handle(r, http.MethodGet, "/records", listrecords.NewHandler(store).ListRecords)
		httpapi.Handle(r, http.MethodPost, "/records", createrecord.NewHandler(store, sessions).CreateRecord, httpapi.WithStatus(http.StatusCreated))
		r.MethodFunc(http.MethodGet, "/records/export", exportrecords.NewHandler(store).ExportRecords)
		httpapi.Handle(r, http.MethodGet, "/records/{id}", getrecord.NewHandler(store).GetRecord)
		httpapi.Handle(r, http.MethodPut, "/records/{id}", updaterecord.NewHandler(store).UpdateRecord)
		httpapi.Handle(r, http.MethodDelete, "/records/{id}", deleterecord.NewHandler(store).DeleteRecord)

		httpapi.Handle(r, http.MethodPost, "/files/upload-url", uploadurl.NewHandler(files).UploadURL)
		httpapi.Handle(r, http.MethodGet, "/files/*", downloadurl.NewHandler(files).DownloadURL)
	})

	return server.Start(ctx, s)
}
