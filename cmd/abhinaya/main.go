package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/abhinaya/internal/config"
	"github.com/ayusman/abhinaya/internal/personality"
	"github.com/ayusman/abhinaya/internal/server"
	"github.com/ayusman/abhinaya/internal/session"
	"github.com/ayusman/abhinaya/internal/store"
	"github.com/ayusman/abhinaya/internal/tray"
)

func main() {
	fmt.Println("Abhinaya - Affect Computation Engine")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the store
	dbPath := cfg.DBPath
	if !filepath.IsAbs(dbPath) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}

		dbDir := filepath.Join(homeDir, ".abhinaya")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, cfg.DBPath)
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Load the personality profile
	profile := personality.Default()
	if cfg.PersonalityPath != "" {
		profile, err = personality.Load(cfg.PersonalityPath)
		if err != nil {
			log.Fatalf("Failed to load personality: %v", err)
		}
		log.Printf("Loaded personality %q", profile.Name)
	}

	emotions, err := profile.EmotionTable()
	if err != nil {
		log.Fatalf("Invalid personality emotion overrides: %v", err)
	}
	gestures, err := profile.GestureTable()
	if err != nil {
		log.Fatalf("Invalid personality gesture overrides: %v", err)
	}

	// Build the session
	sess := session.New(session.Config{
		Store:        st,
		CameraID:     cfg.CameraID,
		MotionThresh: cfg.MotionThreshold,
		Alpha:        profile.Alpha,
		Emotions:     emotions,
		Gestures:     gestures,
	})

	sess.SetEnabled(true)
	if err := sess.Start(); err != nil {
		log.Fatalf("Failed to start perception: %v", err)
	}
	defer sess.Stop()

	// Prune old detection history in the background
	if cfg.RetentionDays > 0 {
		go pruneLoop(st, cfg.RetentionDays)
	}

	// Configure and start the HTTP server
	srv := server.New(server.Config{
		StaticDir: findWebDir(),
		Store:     st,
		Session:   sess,
	})

	go func() {
		log.Printf("Starting server on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main thread
	tr := tray.New()
	tr.OnToggle(sess.SetEnabled)
	tr.OnReset(sess.Reset)
	tr.OnQuit(sess.Stop)

	sess.OnUpdate = func(state session.State) {
		tr.SetMood(string(state.Label), state.Intensity)
	}

	tr.Run()
}

// pruneLoop removes detections past the retention window, once a day.
func pruneLoop(st *store.Store, retentionDays int) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for ; ; <-ticker.C {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		pruned, err := st.Detections().PruneOlderThan(cutoff)
		if err != nil {
			log.Printf("Failed to prune detections: %v", err)
		} else if pruned > 0 {
			log.Printf("Pruned %d detections older than %d days", pruned, retentionDays)
		}
	}
}

// findWebDir searches for the web directory in common locations.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".abhinaya", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
