// Package companion stamps the build number into manifests that live next to
// the plugin descriptors (package.json, Chart.yaml, gradle.properties, ...).
// JSON edits go through sjson so key order and layout survive; YAML and TOML
// are re-marshalled; raw files are replaced; regex targets have their first
// capturing group rewritten.
package companion
