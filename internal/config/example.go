package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# report2xctsk configuration file
# Values can be overridden by XCTSK_* environment variables or CLI flags

# Hours subtracted from the local times in a report (9 = JST)
utc_offset = 9

# Waypoint catalog (.wpt) used for turnpoint descriptions
# waypoint_file = "waypoints.wpt"

# Directory task files are written to (relative to the working directory)
output_dir = "."

# Validate generated tasks against the bundled schema
validate_output = true

# Refuse to write a task that fails validation
strict_validation = false

# Schema file overriding the bundled one
# schema_file = "xctsk.schema.json"

# Conversion history (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.report2xctsk"
history = true

# HTTP service
listen_addr = ":8080"
max_upload_bytes = 1048576

# Logging
log_level = "info"    # debug, info, warn, error
log_format = "text"   # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
