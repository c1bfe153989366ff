package config

import (
	"fmt"
	"os"

	supa "github.com/supabase-community/supabase-go"
)

var SupabaseClient *supa.Client

// InitSupabase initializes the Supabase client from SUPABASE_URL and
// SUPABASE_SERVICE_KEY. Both are required: the store holds every template and
// render record, so there is no useful degraded mode without it.
func InitSupabase() error {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_KEY")
	if supabaseKey == "" {
		supabaseKey = os.Getenv("SUPABASE_ANON_KEY")
		if supabaseKey != "" {
			Log.Warn("Using anonymous key for Supabase. Set SUPABASE_SERVICE_KEY for full access.")
		}
	}
	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY (or SUPABASE_ANON_KEY) must be set")
	}

	client, err := supa.NewClient(supabaseURL, supabaseKey, nil)
	if err != nil {
		return fmt.Errorf("error initializing Supabase client: %w", err)
	}

	SupabaseClient = client
	Log.Info("Supabase client initialized successfully")
	return nil
}
