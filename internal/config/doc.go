// Package config provides configuration structures and utilities for addonscan.
// It defines the main options for scanning an addons root, layout detection
// tuning, and report output destinations.
package config
