// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the JSON or YAML configuration file that sets the
// certificate defaults and output directory for fixture generation.
package config
