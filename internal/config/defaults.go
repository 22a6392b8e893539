package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# Bempot Configuration
# See 'bempot config -h' for commands, 'bempot config keys' for all options

# Evaluation settings
evaluationMode: dense                 # Evaluation mode: dense | hmat
maxThreadCount: -1                    # Max threads during evaluation (-1 = automatic)
verbosityLevel: default               # Logging verbosity: low | default | high

# Hierarchical-matrix settings (used when evaluationMode is hmat)
hmat:
  tolerance: 1.0e-4                   # ACA compression tolerance
  eta: 1.2                            # Block admissibility parameter
  leafSize: 32                        # Max points per undivided cluster
  maxRank: 64                         # Rank cap per compressed block
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		// evaluationMode: which algorithm path the evaluation pipeline runs.
		// "dense" evaluates kernels pairwise; "hmat" compresses the operator.
		"evaluationMode": "dense",
		// maxThreadCount: thread budget for evaluation. -1 defers the decision
		// to the runtime at dispatch time.
		"maxThreadCount": -1,
		// verbosityLevel: how much the evaluation pipeline logs.
		"verbosityLevel": "default",
		// hmat: hierarchical-matrix assembly settings, consulted only when
		// evaluationMode is "hmat".
		"hmat": map[string]interface{}{
			"tolerance": 1e-4,
			"eta":       1.2,
			"leafSize":  32,
			"maxRank":   64,
		},
	}
}
