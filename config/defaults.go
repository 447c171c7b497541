package config

const (
	defaultRawDir             = "raw/train_audio"
	defaultIntermediateDir    = "intermediate"
	defaultAudioExtension     = ".wav"
	defaultCensSampleRate     = 10
	defaultWindow             = 50
	defaultWorkers            = 12
	defaultMinDurationSeconds = 5.0
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults. DataRoot is
// intentionally empty; callers must supply it (flag or config file).
func Default() Config {
	return Config{
		RawDir:              defaultRawDir,
		IntermediateDir:     defaultIntermediateDir,
		AudioExtension:      defaultAudioExtension,
		CensSampleRate:      defaultCensSampleRate,
		MatrixProfileWindow: defaultWindow,
		Workers:             defaultWorkers,
		MinDurationSeconds:  defaultMinDurationSeconds,
		LogLevel:            defaultLogLevel,
	}
}
