package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"PinguinAgent/models"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	LocalDB   *gorm.DB
	Firestore *firestore.Client
	Messaging *messaging.Client
)

// Settings holds everything the agent reads from the environment at startup.
type Settings struct {
	OwnerUID          string        // firebase uid of the monitored child
	ParentUID         string        // firebase uid of the controlling parent
	DeviceToken       string        // backend-issued token guarding the local API
	ParentDeviceToken string        // FCM token of the parent device, may be empty
	HubURL            string        // family hub websocket endpoint, may be empty
	BridgeURL         string        // loopback endpoint of the platform shim
	ListenPort        string        // local control API port
	PollInterval      time.Duration // foreground poll
	SyncInterval      time.Duration // full accounting pass
}

// LoadSettings reads the agent configuration from environment variables.
// Missing required values are fatal; the agent is useless without them.
func LoadSettings() Settings {
	s := Settings{
		OwnerUID:          os.Getenv("OWNER_UID"),
		ParentUID:         os.Getenv("PARENT_UID"),
		DeviceToken:       os.Getenv("DEVICE_TOKEN"),
		ParentDeviceToken: os.Getenv("PARENT_DEVICE_TOKEN"),
		HubURL:            os.Getenv("HUB_URL"),
		BridgeURL:         os.Getenv("BRIDGE_URL"),
		ListenPort:        os.Getenv("PORT"),
		PollInterval:      durationEnv("POLL_INTERVAL_SECONDS", 5) * time.Second,
		SyncInterval:      durationEnv("SYNC_INTERVAL_SECONDS", 60) * time.Second,
	}

	if s.OwnerUID == "" {
		log.Fatal("OWNER_UID is not set")
	}
	if s.BridgeURL == "" {
		s.BridgeURL = "http://127.0.0.1:8765"
	}
	if s.ListenPort == "" {
		s.ListenPort = "8700"
	}
	return s
}

func durationEnv(key string, def int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(def)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using default %d", key, v, def)
		return time.Duration(def)
	}
	return time.Duration(n)
}

// InitLocalStore opens the on-device sqlite database used for the pass
// journal and the persisted blocked set.
func InitLocalStore() {
	path := os.Getenv("LOCAL_DB_PATH")
	if path == "" {
		path = "pinguin_agent.db"
	}

	var err error
	LocalDB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to open local store:", err)
	}

	LocalDB.AutoMigrate(&models.SyncPass{}, &models.BlockedApp{})
	log.Println("Local store ready at", path)
}

// InitFirebase initializes the Firestore and FCM clients from the service
// account credentials file.
func InitFirebase() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(os.Getenv("FIREBASE_CREDENTIALS_PATH"))
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v", err)
	}

	Firestore, err = app.Firestore(ctx)
	if err != nil {
		log.Fatalf("error getting Firestore client: %v", err)
	}

	Messaging, err = app.Messaging(ctx)
	if err != nil {
		log.Fatalf("error getting Messaging client: %v", err)
	}
}
