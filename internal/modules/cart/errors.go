package cart

import "errors"

var errCartMissing = errors.New("cart mutation returned no cart")
