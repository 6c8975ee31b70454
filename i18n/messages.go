package i18n

// catalog maps language -> message code -> text. Both catalogs carry the same keys.
var catalog = map[string]map[string]string{
	"es": {
		// validation
		"required":              "Obligatorio",
		"too_long":              "Demasiado largo",
		"invalid_email":         "Correo electrónico no válido",
		"invalid_choice":        "Opción no válida",
		"invalid_number":        "Número no válido",
		"must_not_be_negative":  "No puede ser negativo",
		"out_of_range":          "Fuera de rango",
		"invalid_date":          "Fecha no válida (AAAA-MM-DD)",
		"invalid_username":      "Solo letras, números y @/./+/-/_",
		"password_too_short":    "La contraseña debe tener al menos 8 caracteres",
		"password_mismatch":     "Las contraseñas no coinciden",
		"username_taken":        "Ese nombre de usuario ya existe",
		"end_before_start":      "La fecha de fin es anterior a la de inicio",
		"own_project":           "No puedes postularte a tu propio proyecto",
		"file_too_large":        "El archivo es demasiado grande",
		"unsupported_file_type": "Tipo de archivo no permitido",
		"invalid_credentials":   "Usuario o contraseña incorrectos",
		"form.errors_title":     "Revisa los campos marcados",

		// mail
		"mail.application_subject": "Nueva postulación a tu proyecto",
		"mail.application_body":    "%s se ha postulado a tu proyecto: %s.",

		// flash
		"flash.registered":         "Cuenta creada. ¡Bienvenido!",
		"flash.logged_in":          "Sesión iniciada",
		"flash.logged_out":         "Sesión cerrada",
		"flash.profile_saved":      "Perfil actualizado",
		"flash.experience_saved":   "Experiencia guardada",
		"flash.experience_deleted": "Experiencia eliminada",
		"flash.project_saved":      "Proyecto publicado",
		"flash.applied":            "Te has postulado al proyecto",
		"flash.owner_notified":     "Hemos avisado al dueño del proyecto",
		"flash.already_applied":    "Ya te habías postulado a este proyecto",
		"flash.status_updated":     "Estado actualizado",
		"flash.permission_denied":  "No tienes permiso para esa acción",
		"flash.contact_sent":       "Mensaje enviado. ¡Gracias!",
		"flash.search_invalid":     "Algunos filtros no son válidos; se muestran todos los proyectos",

		// statuses
		"status.pending":  "Pendiente",
		"status.accepted": "Aceptada",
		"status.rejected": "Rechazada",

		// lookups
		"modality.remote":      "Remoto",
		"modality.on-site":     "Presencial",
		"modality.hybrid":      "Híbrido",
		"category.design":      "Diseño",
		"category.development": "Desarrollo",
		"category.writing":     "Redacción",
		"category.marketing":   "Marketing",
		"category.data":        "Datos",
		"category.other":       "Otros",

		// layout
		"app.name":                  "Freelance",
		"nav.home":                  "Inicio",
		"nav.projects":              "Proyectos",
		"nav.new_project":           "Publicar proyecto",
		"nav.my_projects":           "Mis proyectos",
		"nav.all_projects":          "Todos los proyectos",
		"nav.applications_received": "Postulaciones recibidas",
		"nav.applications_sent":     "Mis postulaciones",
		"nav.profile":               "Perfil",
		"nav.contact":               "Contacto",
		"nav.about":                 "Acerca de",
		"nav.chat":                  "Chat",
		"nav.login":                 "Iniciar sesión",
		"nav.register":              "Registrarse",
		"nav.logout":                "Salir",
		"nav.language":              "Idioma",
		"footer.rights":             "Todos los derechos reservados.",
		"common.save":               "Guardar",
		"common.cancel":             "Cancelar",
		"common.back":               "Volver",
		"common.optional":           "opcional",

		// static pages
		"home.title":       "Encuentra tu próximo proyecto",
		"home.lead":        "Publica proyectos, postúlate y gestiona tus candidaturas en un solo lugar.",
		"home.cta_browse":  "Ver proyectos",
		"home.cta_post":    "Publicar un proyecto",
		"about.title":      "Acerca de",
		"about.body":       "Un mercado sencillo que conecta a quienes publican proyectos con profesionales independientes.",
		"chat.title":       "Chat",
		"chat.body":        "El chat estará disponible próximamente.",
		"contact.title":    "Contacto",
		"contact.name":     "Nombre",
		"contact.email":    "Correo electrónico",
		"contact.message":  "Mensaje",
		"contact.submit":   "Enviar",
		"error.title":      "Algo salió mal",
		"error.not_found":  "La página que buscas no existe.",
		"error.mail":       "No pudimos avisar al dueño del proyecto. Inténtalo de nuevo más tarde.",
		"error.internal":   "Error interno del servidor.",
		"error.back_home":  "Volver al inicio",

		// auth
		"auth.login_title":       "Iniciar sesión",
		"auth.register_title":    "Crear cuenta",
		"auth.username":          "Usuario",
		"auth.email":             "Correo electrónico",
		"auth.first_name":        "Nombre",
		"auth.last_name":         "Apellido",
		"auth.password":          "Contraseña",
		"auth.password_confirm":  "Confirmar contraseña",
		"auth.submit_login":      "Entrar",
		"auth.submit_register":   "Registrarme",
		"auth.no_account":        "¿No tienes cuenta?",
		"auth.have_account":      "¿Ya tienes cuenta?",

		// profile
		"profile.title":              "Mi perfil",
		"profile.edit_title":         "Editar perfil",
		"profile.account_section":    "Cuenta",
		"profile.freelancer_section": "Perfil profesional",
		"profile.hourly_rate":        "Tarifa por hora",
		"profile.currency":           "Moneda",
		"profile.avatar":             "Foto",
		"profile.edit":               "Editar",
		"profile.experience":         "Experiencia",
		"profile.add_experience":     "Añadir experiencia",
		"profile.no_experience":      "Todavía no has añadido experiencia.",
		"profile.present":            "Actualidad",

		// experience
		"experience.new_title":      "Nueva experiencia",
		"experience.edit_title":     "Editar experiencia",
		"experience.title":          "Puesto",
		"experience.company":        "Empresa",
		"experience.description":    "Descripción",
		"experience.start_date":     "Fecha de inicio",
		"experience.end_date":       "Fecha de fin",
		"experience.end_date_help":  "Déjalo vacío si sigues en el puesto",
		"experience.delete":         "Eliminar",
		"experience.confirm_delete": "¿Eliminar esta experiencia?",

		// projects
		"project.list_title":          "Proyectos",
		"project.mine_title":          "Mis proyectos",
		"project.all_title":           "Todos los proyectos",
		"project.new_title":           "Publicar proyecto",
		"project.name":                "Nombre",
		"project.description":         "Descripción",
		"project.modality":            "Modalidad",
		"project.category":            "Categoría",
		"project.salary":              "Salario",
		"project.currency":            "Moneda",
		"project.attachment":          "Archivo adjunto",
		"project.owner":               "Publicado por",
		"project.search_name":         "Buscar por nombre",
		"project.search_min_salary":   "Salario mínimo",
		"project.any":                 "Cualquiera",
		"project.filter":              "Filtrar",
		"project.clear":               "Limpiar",
		"project.empty":               "No hay proyectos que coincidan.",
		"project.view":                "Ver",
		"project.apply":               "Postularme",
		"project.download_attachment": "Descargar adjunto",
		"project.submit":              "Publicar",

		// apply
		"apply.title":   "Postularme a",
		"apply.confirm": "Se enviará un aviso al dueño del proyecto con tu nombre de usuario.",
		"apply.already": "Ya te postulaste a este proyecto.",
		"apply.own":     "Este proyecto es tuyo.",
		"apply.submit":  "Confirmar postulación",

		// applications
		"applications.manage_title": "Postulaciones recibidas",
		"applications.mine_title":   "Mis postulaciones",
		"applications.applicant":    "Postulante",
		"applications.project":      "Proyecto",
		"applications.status":       "Estado",
		"applications.date":         "Fecha",
		"applications.actions":      "Acciones",
		"applications.empty":        "No hay postulaciones.",
		"applications.accept":       "Aceptar",
		"applications.reject":       "Rechazar",
		"applications.reset":        "Marcar pendiente",
	},
	"en": {
		// validation
		"required":              "Required",
		"too_long":              "Too long",
		"invalid_email":         "Invalid email address",
		"invalid_choice":        "Invalid choice",
		"invalid_number":        "Invalid number",
		"must_not_be_negative":  "Cannot be negative",
		"out_of_range":          "Out of range",
		"invalid_date":          "Invalid date (YYYY-MM-DD)",
		"invalid_username":      "Letters, digits and @/./+/-/_ only",
		"password_too_short":    "Password must be at least 8 characters",
		"password_mismatch":     "Passwords do not match",
		"username_taken":        "That username is already taken",
		"end_before_start":      "End date is before start date",
		"own_project":           "You cannot apply to your own project",
		"file_too_large":        "File is too large",
		"unsupported_file_type": "File type not allowed",
		"invalid_credentials":   "Wrong username or password",
		"form.errors_title":     "Please fix the highlighted fields",

		// mail
		"mail.application_subject": "New application to your project",
		"mail.application_body":    "%s has applied to your project: %s.",

		// flash
		"flash.registered":         "Account created. Welcome!",
		"flash.logged_in":          "Signed in",
		"flash.logged_out":         "Signed out",
		"flash.profile_saved":      "Profile updated",
		"flash.experience_saved":   "Experience saved",
		"flash.experience_deleted": "Experience deleted",
		"flash.project_saved":      "Project posted",
		"flash.applied":            "You applied to the project",
		"flash.owner_notified":     "The project owner has been notified",
		"flash.already_applied":    "You had already applied to this project",
		"flash.status_updated":     "Status updated",
		"flash.permission_denied":  "You are not allowed to do that",
		"flash.contact_sent":       "Message sent. Thank you!",
		"flash.search_invalid":     "Some filters are invalid; showing all projects",

		// statuses
		"status.pending":  "Pending",
		"status.accepted": "Accepted",
		"status.rejected": "Rejected",

		// lookups
		"modality.remote":      "Remote",
		"modality.on-site":     "On-site",
		"modality.hybrid":      "Hybrid",
		"category.design":      "Design",
		"category.development": "Development",
		"category.writing":     "Writing",
		"category.marketing":   "Marketing",
		"category.data":        "Data",
		"category.other":       "Other",

		// layout
		"app.name":                  "Freelance",
		"nav.home":                  "Home",
		"nav.projects":              "Projects",
		"nav.new_project":           "Post a project",
		"nav.my_projects":           "My projects",
		"nav.all_projects":          "All projects",
		"nav.applications_received": "Applications received",
		"nav.applications_sent":     "My applications",
		"nav.profile":               "Profile",
		"nav.contact":               "Contact",
		"nav.about":                 "About",
		"nav.chat":                  "Chat",
		"nav.login":                 "Sign in",
		"nav.register":              "Sign up",
		"nav.logout":                "Sign out",
		"nav.language":              "Language",
		"footer.rights":             "All rights reserved.",
		"common.save":               "Save",
		"common.cancel":             "Cancel",
		"common.back":               "Back",
		"common.optional":           "optional",

		// static pages
		"home.title":       "Find your next project",
		"home.lead":        "Post projects, apply and track your applications in one place.",
		"home.cta_browse":  "Browse projects",
		"home.cta_post":    "Post a project",
		"about.title":      "About",
		"about.body":       "A simple marketplace connecting project owners with freelancers.",
		"chat.title":       "Chat",
		"chat.body":        "Chat is coming soon.",
		"contact.title":    "Contact",
		"contact.name":     "Name",
		"contact.email":    "Email",
		"contact.message":  "Message",
		"contact.submit":   "Send",
		"error.title":      "Something went wrong",
		"error.not_found":  "The page you are looking for does not exist.",
		"error.mail":       "We could not notify the project owner. Please try again later.",
		"error.internal":   "Internal server error.",
		"error.back_home":  "Back to home",

		// auth
		"auth.login_title":       "Sign in",
		"auth.register_title":    "Create account",
		"auth.username":          "Username",
		"auth.email":             "Email",
		"auth.first_name":        "First name",
		"auth.last_name":         "Last name",
		"auth.password":          "Password",
		"auth.password_confirm":  "Confirm password",
		"auth.submit_login":      "Sign in",
		"auth.submit_register":   "Sign up",
		"auth.no_account":        "No account yet?",
		"auth.have_account":      "Already registered?",

		// profile
		"profile.title":              "My profile",
		"profile.edit_title":         "Edit profile",
		"profile.account_section":    "Account",
		"profile.freelancer_section": "Professional profile",
		"profile.hourly_rate":        "Hourly rate",
		"profile.currency":           "Currency",
		"profile.avatar":             "Photo",
		"profile.edit":               "Edit",
		"profile.experience":         "Experience",
		"profile.add_experience":     "Add experience",
		"profile.no_experience":      "You have not added any experience yet.",
		"profile.present":            "Present",

		// experience
		"experience.new_title":      "New experience",
		"experience.edit_title":     "Edit experience",
		"experience.title":          "Position",
		"experience.company":        "Company",
		"experience.description":    "Description",
		"experience.start_date":     "Start date",
		"experience.end_date":       "End date",
		"experience.end_date_help":  "Leave empty if you still hold the position",
		"experience.delete":         "Delete",
		"experience.confirm_delete": "Delete this experience?",

		// projects
		"project.list_title":          "Projects",
		"project.mine_title":          "My projects",
		"project.all_title":           "All projects",
		"project.new_title":           "Post a project",
		"project.name":                "Name",
		"project.description":         "Description",
		"project.modality":            "Modality",
		"project.category":            "Category",
		"project.salary":              "Salary",
		"project.currency":            "Currency",
		"project.attachment":          "Attachment",
		"project.owner":               "Posted by",
		"project.search_name":         "Search by name",
		"project.search_min_salary":   "Minimum salary",
		"project.any":                 "Any",
		"project.filter":              "Filter",
		"project.clear":               "Clear",
		"project.empty":               "No matching projects.",
		"project.view":                "View",
		"project.apply":               "Apply",
		"project.download_attachment": "Download attachment",
		"project.submit":              "Post",

		// apply
		"apply.title":   "Apply to",
		"apply.confirm": "The project owner will be emailed your username.",
		"apply.already": "You already applied to this project.",
		"apply.own":     "This project is yours.",
		"apply.submit":  "Confirm application",

		// applications
		"applications.manage_title": "Applications received",
		"applications.mine_title":   "My applications",
		"applications.applicant":    "Applicant",
		"applications.project":      "Project",
		"applications.status":       "Status",
		"applications.date":         "Date",
		"applications.actions":      "Actions",
		"applications.empty":        "No applications.",
		"applications.accept":       "Accept",
		"applications.reject":       "Reject",
		"applications.reset":        "Mark pending",
	},
}
