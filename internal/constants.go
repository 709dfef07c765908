/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent           = "pingpong-tdbot/0.1.0 (+https://github.com/mikeb26/pingpong-tdbot)"
	DefaultTournament   = "default"
	DefaultHistoryLimit = 256
	DefaultListenAddr   = ":8080"
	DefaultStoreDir     = ".pptd"
)
