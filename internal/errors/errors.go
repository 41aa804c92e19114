// Package errors classifies reconcile errors into transient failures that should be
// retried and permanent configuration problems that wait for a spec change.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"

	"github.com/dc-tec/pulsar-operator/internal/constants"
)

// ErrTransientKubernetesAPI indicates a transient Kubernetes API error that should be retried.
// This includes rate limiting, temporary server errors, and request timeouts.
var ErrTransientKubernetesAPI = errors.New("transient Kubernetes API error")

// ErrPermanentConfig indicates a permanent configuration error that requires user intervention.
// This includes unknown component sets, unparsable quantities and invalid image references.
var ErrPermanentConfig = errors.New("permanent configuration error")

// IsTransientKubernetesAPI checks if an error is a transient Kubernetes API error.
func IsTransientKubernetesAPI(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrTransientKubernetesAPI) {
		return true
	}

	if apierrors.IsTooManyRequests(err) ||
		apierrors.IsServerTimeout(err) ||
		apierrors.IsTimeout(err) ||
		apierrors.IsServiceUnavailable(err) ||
		apierrors.IsInternalError(err) ||
		apierrors.IsConflict(err) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"rate limit",
		"too many requests",
		"service unavailable",
		"connection refused",
		"i/o timeout",
	} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// WrapTransientKubernetesAPI wraps an error as a transient Kubernetes API error.
// If the error is already classified as transient, it is returned as-is.
func WrapTransientKubernetesAPI(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTransientKubernetesAPI) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrTransientKubernetesAPI, err)
}

// WrapPermanentConfig wraps an error as a permanent configuration error.
func WrapPermanentConfig(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrPermanentConfig) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrPermanentConfig, err)
}

// IsPermanent checks if an error is permanent (requires user intervention).
// API validation rejections count as permanent; retrying the same object cannot succeed.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrPermanentConfig) || apierrors.IsInvalid(err)
}

// ShouldRequeue determines if an error should trigger a requeue.
// Returns (shouldRequeue, requeueAfter).
func ShouldRequeue(err error) (bool, time.Duration) {
	if err == nil {
		return false, 0
	}

	// Permanent errors wait for the next spec change.
	if IsPermanent(err) {
		return false, 0
	}

	if IsTransientKubernetesAPI(err) {
		return true, constants.RequeueShort
	}

	// Unknown errors fall back to the controller rate limiter.
	return true, 0
}

// IsCRDMissingError checks if an error indicates that a CRD is not installed.
func IsCRDMissingError(err error) bool {
	if err == nil {
		return false
	}

	if meta.IsNoMatchError(err) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "no matches for kind") ||
		strings.Contains(errStr, "no kind is registered for the type") ||
		strings.Contains(errStr, "could not find the requested resource")
}

// WrapCRDMissing wraps an error as a permanent config error for missing CRDs.
func WrapCRDMissing(err error) error {
	if err == nil {
		return nil
	}

	if IsCRDMissingError(err) {
		return WrapPermanentConfig(fmt.Errorf("CRD not installed: %w", err))
	}

	return err
}
