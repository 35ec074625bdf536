// Package fieldcodec encrypts and decrypts individual text fields of trip
// records with a trip key.
//
// Every encrypted field has a sibling boolean flag on its record telling
// whether the stored value is ciphertext. Decryption never fails: a field
// that cannot be opened is replaced by a placeholder for its role, so
// ciphertext never reaches a view and one bad field never hides its
// siblings.
package fieldcodec
