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
	"context"
	"fmt"
	"io"
	"strings"
)

// RenderStatic writes the whole page once, for output that is not a
// terminal. Carousels show their first item and counters their final
// value.
func RenderStatic(w io.Writer, width int, opts Options) error {
	m, err := New(context.Background(), opts)
	if err != nil {
		return err
	}
	defer m.quit()

	m.static = true
	if width > 0 {
		m.width = width
	}
	m.form.SetWidth(m.contentWidth())

	var b strings.Builder
	b.WriteString(brandStyle.Render(m.cat.Brand.Name) + "  " + dimStyle.Render(m.cat.Brand.Tagline) + "\n\n")
	for _, id := range Order {
		b.WriteString(m.renderSection(id))
		b.WriteString("\n\n")
	}
	if _, err := fmt.Fprint(w, b.String()); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	return nil
}
