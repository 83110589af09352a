package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/cloud"
	"github.com/de-tools/health-atlas/pkg/services/metrics"
	"github.com/de-tools/health-atlas/pkg/services/views"
	"github.com/spf13/viper"
)

const EnvPrefix = "HEALTH_ATLAS"

type Settings struct {
	Server     ServerSettings     `mapstructure:"server"`
	Documents  DocumentSettings   `mapstructure:"documents"`
	AWS        AWSSettings        `mapstructure:"aws"`
	Estimation EstimationSettings `mapstructure:"estimation"`
	RateLimit  RateLimitSettings  `mapstructure:"rate_limit"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DocumentSettings struct {
	CanonicalPath string `mapstructure:"canonical_path"`
	LegacyPath    string `mapstructure:"legacy_path"`
	Bucket        string `mapstructure:"bucket"`
	CanonicalKey  string `mapstructure:"canonical_key"`
	LegacyKey     string `mapstructure:"legacy_key"`
}

type AWSSettings struct {
	Enabled      bool               `mapstructure:"enabled"`
	Profile      string             `mapstructure:"profile"`
	Region       string             `mapstructure:"region"`
	UploadBucket string             `mapstructure:"upload_bucket"`
	UploadPrefix string             `mapstructure:"upload_prefix"`
	Athena       AthenaSettings     `mapstructure:"athena"`
	SageMaker    SageMakerSettings  `mapstructure:"sagemaker"`
	Comprehend   ComprehendSettings `mapstructure:"comprehend"`
}

type AthenaSettings struct {
	Database       string        `mapstructure:"database"`
	OutputLocation string        `mapstructure:"output_location"`
	Workgroup      string        `mapstructure:"workgroup"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
}

type SageMakerSettings struct {
	DemandEndpoint  string `mapstructure:"demand_endpoint"`
	CostEndpoint    string `mapstructure:"cost_endpoint"`
	AnomalyEndpoint string `mapstructure:"anomaly_endpoint"`
}

type ComprehendSettings struct {
	LanguageCode string `mapstructure:"language_code"`
}

type EstimationSettings struct {
	LaboratoryBillingShare      float64  `mapstructure:"laboratory_billing_share"`
	LaboratoryPatientMultiplier float64  `mapstructure:"laboratory_patient_multiplier"`
	LaboratoryAverageStay       float64  `mapstructure:"laboratory_average_stay"`
	EmergencyDepartments        []string `mapstructure:"emergency_departments"`
	TrendEmergencyShare         float64  `mapstructure:"trend_emergency_share"`
	TrendInpatientShare         float64  `mapstructure:"trend_inpatient_share"`
	TrendLaboratoryShare        float64  `mapstructure:"trend_laboratory_share"`
}

type RateLimitSettings struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("documents.canonical_path", "data/processed/metricas_completas.json")
	v.SetDefault("documents.legacy_path", "data/processed/metricas.json")
	v.SetDefault("documents.bucket", "")
	v.SetDefault("documents.canonical_key", "processed/metricas_completas.json")
	v.SetDefault("documents.legacy_key", "processed/metricas.json")

	v.SetDefault("aws.enabled", false)
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.upload_bucket", "")
	v.SetDefault("aws.upload_prefix", cloud.DefaultUploadPrefix)
	v.SetDefault("aws.athena.database", "hospital_economics_dev")
	v.SetDefault("aws.athena.output_location", "")
	v.SetDefault("aws.athena.workgroup", "primary")
	v.SetDefault("aws.athena.poll_interval", cloud.DefaultPollInterval)
	v.SetDefault("aws.athena.max_attempts", cloud.DefaultMaxAttempts)
	v.SetDefault("aws.sagemaker.demand_endpoint", "hospital-economics-dev-demand-endpoint")
	v.SetDefault("aws.sagemaker.cost_endpoint", "hospital-economics-dev-cost-endpoint")
	v.SetDefault("aws.sagemaker.anomaly_endpoint", "hospital-economics-dev-anomaly-endpoint")
	v.SetDefault("aws.comprehend.language_code", "es")

	ratios := views.DefaultRatios()
	v.SetDefault("estimation.laboratory_billing_share", ratios.LaboratoryBillingShare)
	v.SetDefault("estimation.laboratory_patient_multiplier", ratios.LaboratoryPatientMultiplier)
	v.SetDefault("estimation.laboratory_average_stay", ratios.LaboratoryAverageStay)
	v.SetDefault("estimation.emergency_departments", ratios.EmergencyDepartments)
	v.SetDefault("estimation.trend_emergency_share", ratios.TrendEmergencyShare)
	v.SetDefault("estimation.trend_inpatient_share", ratios.TrendInpatientShare)
	v.SetDefault("estimation.trend_laboratory_share", ratios.TrendLaboratoryShare)

	v.SetDefault("rate_limit.requests_per_second", 5.0)
	v.SetDefault("rate_limit.burst", 10)
}

// Load reads settings from path, when given, on top of the defaults. Environment variables
// prefixed with HEALTH_ATLAS_ override both, e.g. HEALTH_ATLAS_SERVER_PORT.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &s, nil
}

func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Server.Host, s.Server.Port)
}

func (s Settings) Ratios() views.EstimationRatios {
	e := s.Estimation
	return views.EstimationRatios{
		LaboratoryBillingShare:      e.LaboratoryBillingShare,
		LaboratoryPatientMultiplier: e.LaboratoryPatientMultiplier,
		LaboratoryAverageStay:       e.LaboratoryAverageStay,
		EmergencyDepartments:        e.EmergencyDepartments,
		TrendEmergencyShare:         e.TrendEmergencyShare,
		TrendInpatientShare:         e.TrendInpatientShare,
		TrendLaboratoryShare:        e.TrendLaboratoryShare,
	}
}

func (s Settings) LoaderSettings() metrics.Settings {
	d := s.Documents
	return metrics.Settings{
		CanonicalPath: d.CanonicalPath,
		LegacyPath:    d.LegacyPath,
		Bucket:        d.Bucket,
		CanonicalKey:  d.CanonicalKey,
		LegacyKey:     d.LegacyKey,
	}
}

func (s Settings) Query() cloud.QueryConfig {
	a := s.AWS.Athena
	return cloud.QueryConfig{
		Database:       a.Database,
		OutputLocation: a.OutputLocation,
		Workgroup:      a.Workgroup,
		PollInterval:   a.PollInterval,
		MaxAttempts:    a.MaxAttempts,
	}
}

func (s Settings) Storage() cloud.StorageConfig {
	return cloud.StorageConfig{
		Bucket:       s.AWS.UploadBucket,
		UploadPrefix: s.AWS.UploadPrefix,
	}
}

func (s Settings) Endpoints() map[domain.PredictionKind]string {
	sm := s.AWS.SageMaker
	return map[domain.PredictionKind]string{
		domain.PredictionDemand:  sm.DemandEndpoint,
		domain.PredictionCost:    sm.CostEndpoint,
		domain.PredictionAnomaly: sm.AnomalyEndpoint,
	}
}
