package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ThatOtherAndrew/ecodigital/internal/classify"
	"github.com/ThatOtherAndrew/ecodigital/internal/dispatch"
	"github.com/ThatOtherAndrew/ecodigital/internal/execute"
	"github.com/ThatOtherAndrew/ecodigital/internal/gesture"
	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
	"github.com/ThatOtherAndrew/ecodigital/internal/stroke"
)

type Settings struct {
	Sampler     SamplerSettings    `yaml:"sampler"`
	Plane       string             `yaml:"plane"`
	Classifier  ClassifierSettings `yaml:"classifier"`
	Recognizer  RecognizerSettings `yaml:"recognizer"`
	Dispatch    DispatchSettings   `yaml:"dispatch"`
	Classifiers []string           `yaml:"classifiers"`

	// path is the file the settings came from, used to resolve relative
	// template files.
	path string
}

type SamplerSettings struct {
	MinPointDistancePx float64 `yaml:"min_point_distance_px"`
	MaxPointsPerStroke int     `yaml:"max_points_per_stroke"`
}

type ClassifierSettings struct {
	MinStrokeLengthPx     float64 `yaml:"min_stroke_length_px"`
	ClosureToleranceR     float64 `yaml:"closure_tolerance_r"`
	RoundnessToleranceRsd float64 `yaml:"roundness_tolerance_rsd"`
	CornerEnabled         bool    `yaml:"corner_enabled"`
	AngleMinDeg           float64 `yaml:"angle_min_deg"`
	AngleMaxDeg           float64 `yaml:"angle_max_deg"`
	StraightnessRMS       float64 `yaml:"straightness_rms"`
	MinLegFraction        float64 `yaml:"min_leg_fraction"`
	VertexPosMinFrac      float64 `yaml:"vertex_pos_min_frac"`
	VertexPosMaxFrac      float64 `yaml:"vertex_pos_max_frac"`
	EndSpreadFraction     float64 `yaml:"end_spread_fraction"`
}

type RecognizerSettings struct {
	Samples           int      `yaml:"samples"`
	UnitSize          float64  `yaml:"unit_size"`
	AngleRangeDeg     float64  `yaml:"angle_range_deg"`
	AngleStepDeg      float64  `yaml:"angle_step_deg"`
	ScoreAcceptance   float64  `yaml:"score_acceptance"`
	MinStrokeLengthPx float64  `yaml:"min_stroke_length_px"`
	Templates         []string `yaml:"templates,omitempty"`
	TemplateFile      string   `yaml:"template_file,omitempty"`
}

type DispatchSettings struct {
	Priority                  string  `yaml:"priority"`
	Action                    string  `yaml:"action"`
	CircleScope               string  `yaml:"circle_scope"`
	CornerScope               string  `yaml:"corner_scope"`
	TemplateScope             string  `yaml:"template_scope"`
	SelectionRadiusMultiplier float64 `yaml:"selection_radius_multiplier"`
	AABBPadding               float64 `yaml:"aabb_padding"`
}

func Default() *Settings {
	cls := classify.DefaultConfig()
	rec := stroke.DefaultOptions()
	dsp := dispatch.DefaultOptions()
	return &Settings{
		Sampler: SamplerSettings{
			MinPointDistancePx: gesture.DefaultMinPointDistancePx,
			MaxPointsPerStroke: gesture.DefaultMaxPoints,
		},
		Plane: execute.PlaneXY.String(),
		Classifier: ClassifierSettings{
			MinStrokeLengthPx:     cls.MinStrokeLength,
			ClosureToleranceR:     cls.ClosureToleranceR,
			RoundnessToleranceRsd: cls.RoundnessToleranceRsd,
			CornerEnabled:         true,
			AngleMinDeg:           cls.AngleMinDeg,
			AngleMaxDeg:           cls.AngleMaxDeg,
			StraightnessRMS:       cls.StraightnessRMS,
			MinLegFraction:        cls.MinLegFraction,
			VertexPosMinFrac:      cls.VertexPosMinFrac,
			VertexPosMaxFrac:      cls.VertexPosMaxFrac,
			EndSpreadFraction:     cls.EndSpreadFraction,
		},
		Recognizer: RecognizerSettings{
			Samples:           rec.Samples,
			UnitSize:          rec.UnitSize,
			AngleRangeDeg:     rec.AngleRangeDeg,
			AngleStepDeg:      rec.AngleStepDeg,
			ScoreAcceptance:   rec.ScoreAcceptance,
			MinStrokeLengthPx: rec.MinStrokeLength,
		},
		Dispatch: DispatchSettings{
			Priority:                  classify.FirstWins.String(),
			Action:                    dsp.Action.String(),
			CircleScope:               dsp.CircleScope.String(),
			CornerScope:               dsp.CornerScope.String(),
			TemplateScope:             dsp.TemplateScope.String(),
			SelectionRadiusMultiplier: dsp.SelectionRadiusMultiplier,
			AABBPadding:               dsp.AABBPadding,
		},
		Classifiers: []string{classify.CircleName, classify.CornerName, classify.TemplateName},
	}
}

// GetSettingsPath returns the default settings location, creating its
// directory if needed.
func GetSettingsPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	configDir := filepath.Join(configHome, "ecodigital")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.yaml"), nil
}

// LoadSettings reads the settings at path, or at GetSettingsPath when path
// is empty. A missing file is created with the defaults.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		var err error
		if path, err = GetSettingsPath(); err != nil {
			return nil, errors.Wrap(err, "locate settings")
		}
	}

	defaultSettings := Default()
	defaultSettings.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info.Printf("Creating default settings file at %s", path)
			if err := SaveSettings(path, defaultSettings); err != nil {
				log.Warning.Printf("Failed to create default settings file: %v", err)
			}
			return defaultSettings, nil
		}
		return nil, errors.Wrapf(err, "read settings %s", path)
	}

	// Check for unrecognised keys
	var rawSettings map[interface{}]interface{}
	if err := yaml.Unmarshal(data, &rawSettings); err != nil {
		return nil, errors.Wrapf(models.ErrConfiguration, "parse settings %s: %v", path, err)
	}
	warnUnknownKeys("", rawSettings, reflect.TypeOf(Settings{}))

	settings := Default()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, errors.Wrapf(models.ErrConfiguration, "parse settings %s: %v", path, err)
	}
	settings.path = path
	settings.validate()
	return settings, nil
}

func SaveSettings(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Settings) Path() string { return s.path }

func warnUnknownKeys(prefix string, raw map[interface{}]interface{}, t reflect.Type) {
	known := getKnownKeys(t)
	for k, v := range raw {
		key, _ := k.(string)
		field, ok := known[key]
		if !ok {
			log.Warning.Printf("Unrecognised setting key '%s%v' in settings file", prefix, k)
			continue
		}
		if field.Kind() == reflect.Struct {
			if nested, ok := v.(map[interface{}]interface{}); ok {
				warnUnknownKeys(prefix+key+".", nested, field)
			}
		}
	}
}

func getKnownKeys(t reflect.Type) map[string]reflect.Type {
	keys := make(map[string]reflect.Type)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if yamlTag := field.Tag.Get("yaml"); yamlTag != "" {
			// Handle yaml tags like "field,omitempty"
			tagName := strings.Split(yamlTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = field.Type
			}
		}
	}
	return keys
}
