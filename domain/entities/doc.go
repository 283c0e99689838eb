// Package entities provides core domain entities for the binding bridge.
// These are general-purpose types shared by every layer of the SDK.
// Engine-specific value representations belong in the adapter packages.
package entities
