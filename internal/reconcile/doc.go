// Package reconcile applies resolved matches back to candidate releases
// and records terminal failure statuses.
package reconcile
