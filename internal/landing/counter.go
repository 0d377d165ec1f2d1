// mplus - MedicallyPlus Terminal Landing Experience
// Copyright (C) 2026 MedicallyPlus
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package landing

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/medicallyplus/mplus/internal/content"
)

const defaultCountDuration = 2 * time.Second

// Counter animates a statistic from zero to its final value.
type Counter struct {
	Stat content.CounterStat
}

func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

func (c Counter) duration() time.Duration {
	if c.Stat.Duration <= 0 {
		return defaultCountDuration
	}
	return c.Stat.Duration
}

// Value returns the figure shown after elapsed, truncated to the stat's
// decimal places.
func (c Counter) Value(elapsed time.Duration) float64 {
	p := float64(elapsed) / float64(c.duration())
	p = math.Max(0, math.Min(1, p))
	scale := math.Pow10(c.Stat.Decimals)
	return math.Floor(easeOutCubic(p)*c.Stat.End*scale+1e-9) / scale
}

// Done reports whether the animation has finished after elapsed.
func (c Counter) Done(elapsed time.Duration) bool {
	return elapsed >= c.duration()
}

// Text formats the figure with grouping, prefix and suffix.
func (c Counter) Text(elapsed time.Duration) string {
	v := c.Value(elapsed)
	var num string
	if c.Stat.Decimals == 0 {
		num = humanize.Comma(int64(v))
	} else {
		num = humanize.CommafWithDigits(v, c.Stat.Decimals)
	}
	return c.Stat.Prefix + num + c.Stat.Suffix
}
