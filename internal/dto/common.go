package dto

import "time"

const timeFormat = time.RFC3339
