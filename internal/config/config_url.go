// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// validateEndpoint validates an object store endpoint in the host[:port]
// form minio-go expects. A scheme prefix is rejected since TLS is selected
// with S3_USE_SSL.
func validateEndpoint(endpoint, fieldName string) error {
	if endpoint == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if strings.Contains(endpoint, "://") {
		return fmt.Errorf("%s must be host[:port] without a scheme, got: %s", fieldName, endpoint)
	}
	if strings.ContainsAny(endpoint, "/?#") {
		return fmt.Errorf("%s must not contain a path or query: %s", fieldName, endpoint)
	}

	host, port, err := net.SplitHostPort(endpoint)
	if err != nil {
		// No port is fine.
		host, port = endpoint, ""
	}
	if host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("%s port must be between 1 and 65535, got: %s", fieldName, port)
		}
	}
	return nil
}
