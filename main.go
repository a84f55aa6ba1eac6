package main

import (
	"context"
	"log"

	"github.com/sashabaranov/go-openai"

	"civicsense/auth"
	"civicsense/classify"
	"civicsense/config"
	"civicsense/cronjobs"
	"civicsense/db"
	"civicsense/dupes"
	"civicsense/geospatial"
	"civicsense/mlmodel"
	"civicsense/realtime"
	"civicsense/routes"
	"civicsense/triage"
	"civicsense/urgency"
	"civicsense/vision"
	"civicsense/voice"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Persistence
	firestoreClient, err := db.InitFirestore(ctx, settings.FirebaseCredentials)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer firestoreClient.Close()
	store := db.NewStore(firestoreClient)

	// Inference clients, created once and shared for the process lifetime.
	analyzer, err := urgency.NewGoogleAnalyzer(ctx, settings.NaturalLanguageCredentials)
	if err != nil {
		log.Fatalf("Failed to create Natural Language client: %v", err)
	}
	defer analyzer.Close()

	annotator, err := vision.NewGoogleAnnotator(ctx, settings.VisionCredentials)
	if err != nil {
		log.Fatalf("Failed to create Vision client: %v", err)
	}
	defer annotator.Close()

	mapsClient, err := geospatial.NewMapsClient(settings.MapsAPIKey)
	if err != nil {
		log.Fatalf("Failed to create Maps client: %v", err)
	}

	openaiClient := openai.NewClient(settings.OpenAIAPIKey)

	// Ward polygons are loaded once; a missing dataset degrades lookups to
	// the default ward label.
	wardIndex := geospatial.LoadWardIndex(settings.WardDataPath)

	hub := realtime.NewHub()

	pipeline := &triage.Pipeline{
		Classifier: classify.New(mlmodel.NewClient(settings.ClassifierURL)),
		Scorer:     urgency.NewScorer(analyzer),
		Dupes:      dupes.NewDetector(dupes.NewOpenAIEmbedder(openaiClient), store),
		Vision:     vision.NewTriage(annotator),
		Wards:      wardIndex,
		Areas:      geospatial.NewAreaResolver(mapsClient),
		Store:      store,
		Hub:        hub,
	}

	scheduler := cronjobs.InitCronJobs(store, hub)
	defer scheduler.Stop()

	r := routes.SetupRouter(
		store,
		pipeline,
		hub,
		auth.NewManager(settings.JWTSecret),
		voice.NewTranscriber(openaiClient),
	)

	log.Printf("CivicSense API listening on :%s", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
