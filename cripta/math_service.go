package cripta

// GCD вычисляет НОД двух чисел (алгоритм Евклида)
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ExtendedGCD вычисляет НОД и коэффициенты Безу: a*x + b*y = g.
// При a == 0 возвращает (b, 0, 1).
func ExtendedGCD(a, b int64) (int64, int64, int64) {
	if a == 0 {
		return b, 0, 1
	}

	g, x1, y1 := ExtendedGCD(floorMod(b, a), a)
	x := y1 - floorDiv(b, a)*x1
	y := x1

	return g, x, y
}

// IsCoprime проверяет, что gcd(a, m) == 1
func IsCoprime(a, m int64) bool {
	if m <= 0 {
		return false
	}
	g, _, _ := ExtendedGCD(Mod(a, m), m)
	return g == 1
}

// ModularInverse вычисляет обратный элемент по модулю
func ModularInverse(a, m int64) (int64, bool) {
	if m <= 0 {
		return 0, false
	}

	g, x, _ := ExtendedGCD(Mod(a, m), m)
	if g != 1 {
		return 0, false // обратного не существует
	}

	return Mod(x, m), true
}

// Mod приводит a к диапазону [0, m) для m > 0
func Mod(a, m int64) int64 {
	return floorMod(a, m)
}

func floorMod(a, m int64) int64 {
	r := a % m
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
