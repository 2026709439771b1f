package auth

import "github.com/jhoicas/pasteleria-api/internal/domain/entity"

// CredentialChecker aísla la verificación del PIN contra el almacén de
// usuarios, de modo que se pueda introducir hashing (u otro backend) sin tocar
// la máquina de bloqueo ni el caso de uso de login.
// Authenticate devuelve domain.ErrUserNotFound si ningún usuario coincide.
type CredentialChecker interface {
	Authenticate(pin string) (*entity.User, error)
}
