package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIAddr           string
	TemporalAddress   string
	TemporalTaskQueue string
	PostgresURL       string
	InputDir          string
	OutputPath        string
	MaxTokens         int
	TargetLanguage    string
	Label             string
	Extensions        []string
	FilterWorkers     int
	LangDetector      string
	Sentiment         string
	LogLevel          string
	LogJSON           bool
}

func Load() Config {
	return Config{
		APIAddr:           getenv("DATAPREP_API_ADDR", ":8080"),
		TemporalAddress:   getenv("DATAPREP_TEMPORAL_ADDRESS", ""),
		TemporalTaskQueue: getenv("DATAPREP_TEMPORAL_TASK_QUEUE", "dataprep"),
		PostgresURL:       getenv("DATAPREP_POSTGRES_URL", ""),
		InputDir:          getenv("DATAPREP_INPUT_DIR", ""),
		OutputPath:        getenv("DATAPREP_OUTPUT_PATH", "output/dataset.csv"),
		MaxTokens:         getenvInt("DATAPREP_MAX_TOKENS", 128),
		TargetLanguage:    strings.ToLower(getenv("DATAPREP_TARGET_LANGUAGE", "tr")),
		Label:             getenv("DATAPREP_LABEL", "label"),
		Extensions:        getenvList("DATAPREP_EXTENSIONS", ".txt"),
		FilterWorkers:     getenvInt("DATAPREP_FILTER_WORKERS", 4),
		LangDetector:      getenv("DATAPREP_LANG_DETECTOR", "lingua"),
		Sentiment:         getenv("DATAPREP_SENTIMENT", "lexicon"),
		LogLevel:          getenv("DATAPREP_LOG_LEVEL", "info"),
		LogJSON:           getenvBool("DATAPREP_LOG_JSON", false),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getenvList splits a comma separated value and normalizes every entry to a
// lower-case extension with a leading dot.
func getenvList(k, fallback string) []string {
	raw := getenv(k, fallback)
	out := make([]string, 0, 2)
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		out = append(out, p)
	}
	return out
}
