package postgres

import (
	"fmt"
	"strconv"
	"strings"
)

// inClause genera "column IN ($n, $n+1, ...)" con un placeholder por valor y los args
// correspondientes. Los valores nunca se concatenan en el SQL; column debe venir de una
// lista fija del código, no de la entrada del usuario.
func inClause(column string, start int, values []string) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, fmt.Errorf("in clause: lista vacía")
	}
	if start < 1 {
		return "", nil, fmt.Errorf("in clause: parámetro inicial inválido %d", start)
	}
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = "$" + strconv.Itoa(start+i)
		args[i] = v
	}
	return column + " IN (" + strings.Join(placeholders, ", ") + ")", args, nil
}
