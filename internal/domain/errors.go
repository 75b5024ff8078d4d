// SPDX-License-Identifier: Apache-2.0

package domain

import "errors"

var ErrUnknownFrameType = errors.New("unknown frame type")
var ErrMalformedFrame = errors.New("malformed frame")
