// Package resources embeds the default provider catalog and the STAC
// documents shipped with the registry, and loads them.
package resources
