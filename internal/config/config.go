package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	Recorder      RecorderConfig      `yaml:"recorder"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Whisper       WhisperConfig       `yaml:"whisper"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Diarization   DiarizationConfig   `yaml:"diarization"`
	AWS           AWSConfig           `yaml:"aws"`
	Summarizer    SummarizerConfig    `yaml:"summarizer"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Report        ReportConfig        `yaml:"report"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type PathsConfig struct {
	Recordings     string `yaml:"recordings"`
	Transcriptions string `yaml:"transcriptions"`
	Summaries      string `yaml:"summaries"`
	Reports        string `yaml:"reports"`
	Archived       string `yaml:"archived"`
	Temp           string `yaml:"temp"`
}

type RecorderConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
	BufferSize int `yaml:"buffer_size"`
}

type TranscriptionConfig struct {
	Backend string `yaml:"backend"` // whisper | openai
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type OpenAIConfig struct {
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	TranscribeModel string `yaml:"transcribe_model"`
	ChatModel       string `yaml:"chat_model"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

type DiarizationConfig struct {
	Backend string `yaml:"backend"` // pyannote | aws | none
	Python  string `yaml:"python"`
	Model   string `yaml:"model"`
	HFToken string `yaml:"hf_token"`
}

type AWSConfig struct {
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	LanguageCode string `yaml:"language_code"`
	MaxSpeakers  int    `yaml:"max_speakers"`
	PollSeconds  int    `yaml:"poll_seconds"`
}

type SummarizerConfig struct {
	Backend  string `yaml:"backend"` // gemini | openai
	Language string `yaml:"language"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type ReportConfig struct {
	Format            string     `yaml:"format"` // pdf | png | docx
	PageWidth         float64    `yaml:"page_width"`
	PageHeight        float64    `yaml:"page_height"`
	TopMargin         float64    `yaml:"top_margin"`
	BottomMargin      float64    `yaml:"bottom_margin"`
	LeftMargin        float64    `yaml:"left_margin"`
	RightMargin       float64    `yaml:"right_margin"`
	BodyFontSize      float64    `yaml:"body_font_size"`
	BodyLineHeight    float64    `yaml:"body_line_height"`
	HeadingFontSize   float64    `yaml:"heading_font_size"`
	HeadingLineHeight float64    `yaml:"heading_line_height"`
	HeadingSpacing    float64    `yaml:"heading_spacing"`
	BulletIndent      float64    `yaml:"bullet_indent"`
	FooterReserve     float64    `yaml:"footer_reserve"`
	FooterFontSize    float64    `yaml:"footer_font_size"`
	BrandColor        [3]float64 `yaml:"brand_color"`
	LineWidth         float64    `yaml:"line_width"`
	DPI               float64    `yaml:"dpi"`
	Logo              LogoConfig `yaml:"logo"`
	Fonts             FontConfig `yaml:"fonts"`
	Footer            FooterText `yaml:"footer"`
}

type LogoConfig struct {
	Path   string  `yaml:"path"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset float64 `yaml:"offset"`
}

type FontConfig struct {
	Regular string `yaml:"regular"`
	Bold    string `yaml:"bold"`
}

type FooterText struct {
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads a YAML config file, applies environment overrides and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// applyEnv lets secrets live outside the YAML file
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEYS")); v != "" {
		c.Gemini.APIKeys = nil
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, k)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("HUGGINGFACE_ACCESS_TOKEN")); v != "" {
		c.Diarization.HFToken = v
	}
}

func (c *Config) Validate() error {
	if c.Transcription.Backend == "" {
		c.Transcription.Backend = "whisper"
	}
	switch c.Transcription.Backend {
	case "whisper":
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required for the openai transcription backend")
		}
	default:
		return fmt.Errorf("unknown transcription.backend %q", c.Transcription.Backend)
	}

	if c.Diarization.Backend == "" {
		c.Diarization.Backend = "pyannote"
	}
	switch c.Diarization.Backend {
	case "pyannote", "none":
	case "aws":
		if c.AWS.Bucket == "" {
			return fmt.Errorf("aws.bucket is required for the aws diarization backend")
		}
	default:
		return fmt.Errorf("unknown diarization.backend %q", c.Diarization.Backend)
	}

	if c.Summarizer.Backend == "" {
		c.Summarizer.Backend = "gemini"
	}
	switch c.Summarizer.Backend {
	case "gemini":
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("gemini.api_keys is required for the gemini summarizer")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required for the openai summarizer")
		}
	default:
		return fmt.Errorf("unknown summarizer.backend %q", c.Summarizer.Backend)
	}

	switch c.Report.Format {
	case "":
		c.Report.Format = "pdf"
	case "pdf", "png", "docx":
	default:
		return fmt.Errorf("unknown report.format %q", c.Report.Format)
	}

	c.setDefaults()
	return nil
}

func (c *Config) setDefaults() {
	defaultString(&c.Paths.Recordings, "recordings")
	defaultString(&c.Paths.Transcriptions, "transcriptions")
	defaultString(&c.Paths.Summaries, "summaries")
	defaultString(&c.Paths.Reports, "pdfs")
	defaultString(&c.Paths.Archived, "archived")
	defaultString(&c.Paths.Temp, os.TempDir())

	defaultInt(&c.Recorder.SampleRate, 44100)
	defaultInt(&c.Recorder.Channels, 1)
	defaultInt(&c.Recorder.BufferSize, 1024)

	defaultString(&c.Whisper.Language, "ko")
	defaultInt(&c.Whisper.Threads, 8)

	defaultString(&c.OpenAI.BaseURL, "https://api.openai.com/v1")
	defaultString(&c.OpenAI.TranscribeModel, "whisper-1")
	defaultString(&c.OpenAI.ChatModel, "gpt-4o")
	defaultInt(&c.OpenAI.TimeoutSeconds, 600)

	defaultString(&c.Diarization.Python, "python3")
	defaultString(&c.Diarization.Model, "pyannote/speaker-diarization-3.1")

	defaultString(&c.AWS.Region, "us-east-1")
	defaultString(&c.AWS.LanguageCode, "ko-KR")
	defaultInt(&c.AWS.MaxSpeakers, 10)
	defaultInt(&c.AWS.PollSeconds, 10)

	defaultString(&c.Summarizer.Language, "Korean")
	defaultString(&c.Gemini.Model, "gemini-2.5-flash")

	r := &c.Report
	// A4 in points
	defaultFloat(&r.PageWidth, 595.2756)
	defaultFloat(&r.PageHeight, 841.8898)
	defaultFloat(&r.TopMargin, 40)
	defaultFloat(&r.BottomMargin, 40)
	defaultFloat(&r.LeftMargin, 60)
	defaultFloat(&r.RightMargin, 60)
	defaultFloat(&r.BodyFontSize, 12)
	defaultFloat(&r.BodyLineHeight, 20)
	defaultFloat(&r.HeadingFontSize, 18)
	defaultFloat(&r.HeadingLineHeight, 28)
	defaultFloat(&r.HeadingSpacing, 0.5)
	defaultFloat(&r.BulletIndent, 10)
	defaultFloat(&r.FooterReserve, 70)
	defaultFloat(&r.FooterFontSize, 9)
	defaultFloat(&r.LineWidth, 1)
	defaultFloat(&r.DPI, 144)
	if r.BrandColor == [3]float64{} {
		r.BrandColor = [3]float64{0.7, 0.9, 0.7}
	}
	defaultString(&r.Logo.Path, "assets/company_logo.png")
	defaultFloat(&r.Logo.Width, 120)
	defaultFloat(&r.Logo.Height, 60)
	defaultFloat(&r.Logo.Offset, 30)
	defaultString(&r.Fonts.Regular, "assets/NanumGothic.ttf")
	defaultString(&r.Fonts.Bold, "assets/NanumGothicBold.ttf")

	defaultString(&c.Logging.Level, "info")
	defaultString(&c.Logging.Format, "text")

	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 2
	}
}

func defaultString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func defaultInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func defaultFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}
