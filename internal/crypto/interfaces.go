package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/symmetric_codec_mock.go -package=mock

// SymmetricCodec отвечает за симметричное шифрование полей и ключей.
// Он не знает ничего о сети, хранилищах или поездках.
//
// Схема работы:
//
//	Key     = GenerateKey()                    (256 бит)
//	Blob    = Encrypt(plaintext, Key)          (base64(nonce ‖ ct ‖ tag))
//	Wrapped = Wrap(TripKey, MasterKey)         (подключ HKDF + Encrypt)
type SymmetricCodec interface {
	// GenerateKey генерирует случайный 32-байтовый ключ из CSPRNG.
	GenerateKey() ([]byte, error)

	// Encrypt шифрует plaintext через AES-256-GCM со свежим nonce на каждый
	// вызов и возвращает base64(nonce ‖ ciphertext ‖ tag).
	Encrypt(plaintext, key []byte) (string, error)

	// Decrypt возвращает исходный plaintext без изменений либо ошибку,
	// оборачивающую [ErrDecryption]: битый base64, blob короче nonce+tag,
	// ключ не 32 байта или не прошла проверка тега.
	Decrypt(blob string, key []byte) ([]byte, error)

	// Wrap шифрует ключевой материал подключом, выведенным из wrappingKey.
	// Обёрнутые ключи и зашифрованные поля никогда не делят один ключ.
	Wrap(key, wrappingKey []byte) (string, error)

	// Unwrap обратна Wrap. Ошибки оборачивают [ErrDecryption].
	Unwrap(blob string, wrappingKey []byte) ([]byte, error)
}
